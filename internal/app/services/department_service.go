package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/app/repositories"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
)

// DepartmentService handles business logic for departments
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
	}
}

func validateDepartment(department *models.Department) error {
	if strings.TrimSpace(department.Name) == "" {
		return fmt.Errorf("%w: department name cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// GetAllDepartments retrieves all departments
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// GetDepartmentByID retrieves a department by its ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := validateDepartment(department); err != nil {
		return err
	}
	return s.departmentRepo.Create(ctx, department)
}

// UpdateDepartment updates an existing department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if err := validateDepartment(department); err != nil {
		return err
	}
	return s.departmentRepo.Update(ctx, department)
}

// DeleteDepartment deletes a department by its ID. Deletion fails while
// teachers, students or courses still reference the department.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}
