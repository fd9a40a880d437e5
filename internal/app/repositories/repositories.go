package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repositories sharing one connection pool
type Repositories struct {
	AccountRepository    *AccountRepository
	DepartmentRepository *DepartmentRepository
	TeacherRepository    *TeacherRepository
	StudentRepository    *StudentRepository
	CourseRepository     *CourseRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:    NewAccountRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		TeacherRepository:    NewTeacherRepository(db),
		StudentRepository:    NewStudentRepository(db),
		CourseRepository:     NewCourseRepository(db),
	}
}
