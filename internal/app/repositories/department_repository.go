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

const departmentNameConstraint = "departments_name_key"

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO departments (name, description)
		VALUES ($1, $2)
		RETURNING id`,
		department.Name, department.Description).Scan(&department.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, departmentNameConstraint) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	var department models.Department
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description
		FROM departments
		WHERE id = $1`,
		id).Scan(&department.ID, &department.Name, &department.Description)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetByName retrieves a department by its exact name
func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	var department models.Department
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description
		FROM departments
		WHERE name = $1`,
		name).Scan(&department.ID, &department.Name, &department.Description)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetAll retrieves all departments
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description
		FROM departments
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name, &department.Description); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE departments
		SET name = $1, description = $2
		WHERE id = $3`,
		department.Name, department.Description, department.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, departmentNameConstraint) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}

// Delete deletes a department by ID. Departments still referenced by
// courses, teachers, or students cannot be removed.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentHasRelations
		}
		return fmt.Errorf("error deleting department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}

// Count returns the number of departments
func (r *DepartmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting departments: %w", err)
	}
	return count, nil
}
