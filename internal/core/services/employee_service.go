package services

import (
	"context"
	"errors"
	"strings"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/core/domain"

	"gorm.io/gorm"
)

// Employee errors, aliased from the domain sentinels
var (
	ErrEmployeeNotFound   = domain.ErrEmployeeNotFound
	ErrEmployeeEmailTaken = domain.ErrEmployeeEmailTaken
	ErrEmployeeNameEmpty  = domain.ErrEmployeeNameEmpty
)

// EmployeeService handles employee record business logic
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// CreateEmployeeInput represents create employee input
type CreateEmployeeInput struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"max=100"`
	Role       string `json:"role" validate:"max=100"`
}

// UpdateEmployeeInput represents a partial update; nil fields are untouched
type UpdateEmployeeInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
}

// ListEmployeesInput represents list employees input
type ListEmployeesInput struct {
	Department string
	Role       string
	Offset     int
	Limit      int
}

// CreateEmployee creates a new employee record
func (s *EmployeeService) CreateEmployee(ctx context.Context, createdBy uint, input *CreateEmployeeInput) (*models.Employee, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmployeeNameEmpty
	}

	taken, err := s.employeeRepo.ExistsByEmail(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmployeeEmailTaken
	}

	employee := &models.Employee{
		Name:       input.Name,
		Email:      input.Email,
		Department: input.Department,
		Role:       input.Role,
		CreatedBy:  createdBy,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// GetEmployee returns an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// ListEmployees lists employees filtered by department and role
func (s *EmployeeService) ListEmployees(ctx context.Context, input *ListEmployeesInput) ([]*models.Employee, int64, error) {
	filter := &repositories.EmployeeFilter{
		Department: input.Department,
		Role:       input.Role,
	}
	return s.employeeRepo.List(ctx, filter, input.Offset, input.Limit)
}

// UpdateEmployee applies a partial update to an employee record
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint, input *UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrEmployeeNameEmpty
		}
		employee.Name = *input.Name
	}
	if input.Email != nil && *input.Email != employee.Email {
		taken, err := s.employeeRepo.ExistsByEmail(ctx, *input.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmployeeEmailTaken
		}
		employee.Email = *input.Email
	}
	if input.Department != nil {
		employee.Department = *input.Department
	}
	if input.Role != nil {
		employee.Role = *input.Role
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// DeleteEmployee removes an employee record
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}
