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

// TeacherService handles business logic for teacher profiles
type TeacherService struct {
	teacherRepo    *repositories.TeacherRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(teacherRepo *repositories.TeacherRepository, departmentRepo *repositories.DepartmentRepository) *TeacherService {
	return &TeacherService{
		teacherRepo:    teacherRepo,
		departmentRepo: departmentRepo,
	}
}

func (s *TeacherService) validateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if strings.TrimSpace(teacher.FirstName) == "" {
		return fmt.Errorf("%w: first name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(teacher.LastName) == "" {
		return fmt.Errorf("%w: last name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(teacher.Email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(teacher.EmployeeID) == "" {
		return fmt.Errorf("%w: employee ID cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.departmentRepo.GetByID(ctx, teacher.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error checking department: %w", err)
	}
	return nil
}

// GetAllTeachers retrieves all teacher profiles
func (s *TeacherService) GetAllTeachers(ctx context.Context) ([]*models.Teacher, error) {
	return s.teacherRepo.GetAll(ctx)
}

// GetTeacherByID retrieves a teacher profile by its ID
func (s *TeacherService) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// GetTeachersByDepartment retrieves all teachers in a department
func (s *TeacherService) GetTeachersByDepartment(ctx context.Context, departmentID int64) ([]*models.Teacher, error) {
	return s.teacherRepo.GetByDepartmentID(ctx, departmentID)
}

// CreateTeacher creates a new teacher profile
func (s *TeacherService) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if err := s.validateTeacher(ctx, teacher); err != nil {
		return err
	}
	return s.teacherRepo.Create(ctx, teacher)
}

// UpdateTeacher updates an existing teacher profile
func (s *TeacherService) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if err := s.validateTeacher(ctx, teacher); err != nil {
		return err
	}
	return s.teacherRepo.Update(ctx, teacher)
}

// DeleteTeacher deletes a teacher profile by its ID
func (s *TeacherService) DeleteTeacher(ctx context.Context, id int64) error {
	return s.teacherRepo.Delete(ctx, id)
}
