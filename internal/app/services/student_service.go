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

// StudentService handles business logic for student profiles
type StudentService struct {
	studentRepo    *repositories.StudentRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository, departmentRepo *repositories.DepartmentRepository) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		departmentRepo: departmentRepo,
	}
}

func (s *StudentService) validateStudent(ctx context.Context, student *models.Student) error {
	if strings.TrimSpace(student.FirstName) == "" {
		return fmt.Errorf("%w: first name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(student.LastName) == "" {
		return fmt.Errorf("%w: last name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(student.Email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(student.StudentID) == "" {
		return fmt.Errorf("%w: student ID cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.departmentRepo.GetByID(ctx, student.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error checking department: %w", err)
	}
	return nil
}

// GetAllStudents retrieves all student profiles
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// GetStudentByID retrieves a student profile by its ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentsByDepartment retrieves all students in a department
func (s *StudentService) GetStudentsByDepartment(ctx context.Context, departmentID int64) ([]*models.Student, error) {
	return s.studentRepo.GetByDepartmentID(ctx, departmentID)
}

// CreateStudent creates a new student profile
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(ctx, student); err != nil {
		return err
	}
	return s.studentRepo.Create(ctx, student)
}

// UpdateStudent updates an existing student profile
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(ctx, student); err != nil {
		return err
	}
	return s.studentRepo.Update(ctx, student)
}

// DeleteStudent deletes a student profile by its ID
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}
