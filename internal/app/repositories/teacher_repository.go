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
	teacherEmailConstraint      = "teachers_email_key"
	teacherEmployeeIDConstraint = "teachers_employee_id_key"
)

// TeacherRepository handles database operations for teacher profiles
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
	}
}

func (r *TeacherRepository) scanRow(row pgx.Row) (*models.Teacher, error) {
	var teacher models.Teacher
	err := row.Scan(
		&teacher.ID, &teacher.FirstName, &teacher.LastName, &teacher.Email,
		&teacher.EmployeeID, &teacher.Phone, &teacher.DepartmentID, &teacher.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return &teacher, nil
}

// Create creates a new teacher profile
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO teachers (first_name, last_name, email, employee_id, phone, department_id, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		teacher.FirstName, teacher.LastName, teacher.Email, teacher.EmployeeID,
		teacher.Phone, teacher.DepartmentID, teacher.AccountID).Scan(&teacher.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, teacherEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, teacherEmployeeIDConstraint) {
			return apperrors.ErrEmployeeIDAlreadyExists
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.scanRow(r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, employee_id, phone, department_id, account_id
		FROM teachers
		WHERE id = $1`, id))
}

// GetByEmployeeID retrieves a teacher by employee ID
func (r *TeacherRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error) {
	return r.scanRow(r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, employee_id, phone, department_id, account_id
		FROM teachers
		WHERE employee_id = $1`, employeeID))
}

// GetAll retrieves all teachers
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, email, employee_id, phone, department_id, account_id
		FROM teachers
		ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// GetByDepartmentID retrieves all teachers in a department
func (r *TeacherRepository) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Teacher, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, email, employee_id, phone, department_id, account_id
		FROM teachers
		WHERE department_id = $1
		ORDER BY last_name, first_name`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// Update updates an existing teacher profile
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE teachers
		SET first_name = $1, last_name = $2, email = $3, employee_id = $4,
		    phone = $5, department_id = $6, account_id = $7
		WHERE id = $8`,
		teacher.FirstName, teacher.LastName, teacher.Email, teacher.EmployeeID,
		teacher.Phone, teacher.DepartmentID, teacher.AccountID, teacher.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, teacherEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, teacherEmployeeIDConstraint) {
			return apperrors.ErrEmployeeIDAlreadyExists
		}
		return fmt.Errorf("error updating teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// Delete deletes a teacher by ID
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("teacher has assigned courses and cannot be deleted")
		}
		return fmt.Errorf("error deleting teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// Count returns the number of teacher profiles
func (r *TeacherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting teachers: %w", err)
	}
	return count, nil
}
