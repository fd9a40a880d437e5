package models

// Teacher defines the teacher profile based on the 'teachers' table
type Teacher struct {
	ID           int64  `json:"id" db:"id"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	Email        string `json:"email" db:"email"`
	EmployeeID   string `json:"employeeId" db:"employee_id"`
	Phone        string `json:"phone" db:"phone"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	AccountID    *int64 `json:"accountId,omitempty" db:"account_id"` // Nullable back-reference to an account

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
