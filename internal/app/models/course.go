package models

// Course represents a course offered by a department.
type Course struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	CourseCode   string  `json:"courseCode" db:"course_code"`
	Description  *string `json:"description,omitempty" db:"description"` // Nullable
	Credits      int     `json:"credits" db:"credits"`
	DepartmentID int64   `json:"departmentId" db:"department_id"`
	TeacherID    int64   `json:"teacherId" db:"teacher_id"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
	Teacher    *Teacher    `json:"teacher,omitempty"`
}
