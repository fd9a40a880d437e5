package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
	"github.com/sheikhgalib/academix/internal/pkg/dberrors"
)

const (
	studentEmailConstraint     = "students_email_key"
	studentStudentIDConstraint = "students_student_id_key"
)

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func (r *StudentRepository) scanRow(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID, &student.FirstName, &student.LastName, &student.Email,
		&student.StudentID, &student.Phone, &student.DepartmentID, &student.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

// Create creates a new student profile
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (first_name, last_name, email, student_id, phone, department_id, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		student.FirstName, student.LastName, student.Email, student.StudentID,
		student.Phone, student.DepartmentID, student.AccountID).Scan(&student.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, studentStudentIDConstraint) {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.scanRow(r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, student_id, phone, department_id, account_id
		FROM students
		WHERE id = $1`, id))
}

// GetByStudentID retrieves a student by student number
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	return r.scanRow(r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, student_id, phone, department_id, account_id
		FROM students
		WHERE student_id = $1`, studentID))
}

// GetAll retrieves all students
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, email, student_id, phone, department_id, account_id
		FROM students
		ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetByDepartmentID retrieves all students in a department
func (r *StudentRepository) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, email, student_id, phone, department_id, account_id
		FROM students
		WHERE department_id = $1
		ORDER BY last_name, first_name`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update updates an existing student profile
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET first_name = $1, last_name = $2, email = $3, student_id = $4,
		    phone = $5, department_id = $6, account_id = $7
		WHERE id = $8`,
		student.FirstName, student.LastName, student.Email, student.StudentID,
		student.Phone, student.DepartmentID, student.AccountID, student.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, studentStudentIDConstraint) {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Count returns the number of student profiles
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}
