package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/app/repositories"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
)

// CourseService handles business logic for courses
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	departmentRepo *repositories.DepartmentRepository
	teacherRepo    *repositories.TeacherRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo *repositories.CourseRepository, departmentRepo *repositories.DepartmentRepository, teacherRepo *repositories.TeacherRepository) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
		teacherRepo:    teacherRepo,
	}
}

func (s *CourseService) validateCourse(ctx context.Context, course *models.Course) error {
	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: course name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(course.CourseCode) == "" {
		return fmt.Errorf("%w: course code cannot be empty", apperrors.ErrValidationFailed)
	}
	if course.Credits <= 0 {
		return fmt.Errorf("%w: credits must be positive", apperrors.ErrValidationFailed)
	}

	if _, err := s.departmentRepo.GetByID(ctx, course.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error checking department: %w", err)
	}
	if _, err := s.teacherRepo.GetByID(ctx, course.TeacherID); err != nil {
		if errors.Is(err, apperrors.ErrTeacherNotFound) {
			return apperrors.ErrTeacherNotFound
		}
		return fmt.Errorf("error checking teacher: %w", err)
	}
	return nil
}

// GetAllCourses retrieves all courses
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetCourseByID retrieves a course by its ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetCoursesByDepartment retrieves all courses offered by a department
func (s *CourseService) GetCoursesByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	return s.courseRepo.GetByDepartmentID(ctx, departmentID)
}

// GetCoursesByTeacher retrieves all courses taught by a teacher
func (s *CourseService) GetCoursesByTeacher(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	return s.courseRepo.GetByTeacherID(ctx, teacherID)
}

// CreateCourse creates a new course
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(ctx, course); err != nil {
		return err
	}
	return s.courseRepo.Create(ctx, course)
}

// UpdateCourse updates an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(ctx, course); err != nil {
		return err
	}
	return s.courseRepo.Update(ctx, course)
}

// DeleteCourse deletes a course by its ID
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}
