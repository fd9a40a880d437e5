package models

// Student defines the student profile based on the 'students' table
type Student struct {
	ID           int64  `json:"id" db:"id"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	Email        string `json:"email" db:"email"`
	StudentID    string `json:"studentId" db:"student_id"`
	Phone        string `json:"phone" db:"phone"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	AccountID    *int64 `json:"accountId,omitempty" db:"account_id"` // Nullable back-reference to an account

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
