package repositories

import (
	"context"

	"staffdesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountAdmins(ctx context.Context) (int64, error)
}

// EmployeeFilter narrows employee listings; empty fields match everything
type EmployeeFilter struct {
	Department string
	Role       string
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *EmployeeFilter, offset, limit int) ([]*models.Employee, int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}
