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

const courseCodeConstraint = "courses_course_code_key"

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

func (r *CourseRepository) scanRow(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.Name, &course.CourseCode, &course.Description,
		&course.Credits, &course.DepartmentID, &course.TeacherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (name, course_code, description, credits, department_id, teacher_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		course.Name, course.CourseCode, course.Description, course.Credits,
		course.DepartmentID, course.TeacherID).Scan(&course.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, courseCodeConstraint) {
			return apperrors.ErrCourseCodeAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.scanRow(r.db.QueryRow(ctx, `
		SELECT id, name, course_code, description, credits, department_id, teacher_id
		FROM courses
		WHERE id = $1`, id))
}

// GetByCourseCode retrieves a course by its code
func (r *CourseRepository) GetByCourseCode(ctx context.Context, code string) (*models.Course, error) {
	return r.scanRow(r.db.QueryRow(ctx, `
		SELECT id, name, course_code, description, credits, department_id, teacher_id
		FROM courses
		WHERE course_code = $1`, code))
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.queryMany(ctx, `
		SELECT id, name, course_code, description, credits, department_id, teacher_id
		FROM courses
		ORDER BY course_code`)
}

// GetByDepartmentID retrieves all courses offered by a department
func (r *CourseRepository) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	return r.queryMany(ctx, `
		SELECT id, name, course_code, description, credits, department_id, teacher_id
		FROM courses
		WHERE department_id = $1
		ORDER BY course_code`, departmentID)
}

// GetByTeacherID retrieves all courses taught by a teacher
func (r *CourseRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	return r.queryMany(ctx, `
		SELECT id, name, course_code, description, credits, department_id, teacher_id
		FROM courses
		WHERE teacher_id = $1
		ORDER BY course_code`, teacherID)
}

func (r *CourseRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET name = $1, course_code = $2, description = $3, credits = $4,
		    department_id = $5, teacher_id = $6
		WHERE id = $7`,
		course.Name, course.CourseCode, course.Description, course.Credits,
		course.DepartmentID, course.TeacherID, course.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, courseCodeConstraint) {
			return apperrors.ErrCourseCodeAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Count returns the number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}
