package config

import (
	"fmt"
	"log"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// AdminSeed describes the admin user created on first boot
type AdminSeed struct {
	Username string
	Email    string
	Password string
	FullName string
}

// DefaultAdminSeed returns the development default admin account.
// In production, seed through cmd/seed with explicit flags instead.
func DefaultAdminSeed() AdminSeed {
	return AdminSeed{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "Admin123!",
		FullName: "System Administrator",
	}
}

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.SeedAdminUser(DefaultAdminSeed()); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// SeedAdminUser creates the initial admin user if no active admin exists yet
func (s *Seeder) SeedAdminUser(seed AdminSeed) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	var existing int64
	s.db.Model(&models.User{}).Where("username = ?", seed.Username).Count(&existing)
	if existing > 0 {
		return fmt.Errorf("username '%s' already taken by a non-admin user", seed.Username)
	}

	hashedPassword, err := password.Hash(seed.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: seed.Username,
		Email:    seed.Email,
		Password: hashedPassword,
		FullName: seed.FullName,
		IsAdmin:  true,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user seeded: %s (%s)", admin.Username, admin.Email)
	log.Println("⚠️ Change the seeded admin password after first login")
	return nil
}
