// Command seed creates the initial admin user. Run once to bootstrap a
// deployment, or pass flags to override the development defaults.
package main

import (
	"flag"
	"log"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/config"
)

func main() {
	defaults := config.DefaultAdminSeed()

	username := flag.String("username", defaults.Username, "admin username")
	email := flag.String("email", defaults.Email, "admin email")
	password := flag.String("password", defaults.Password, "admin password")
	fullName := flag.String("name", defaults.FullName, "admin display name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}

	seed := config.AdminSeed{
		Username: *username,
		Email:    *email,
		Password: *password,
		FullName: *fullName,
	}

	if err := config.NewSeeder(db).SeedAdminUser(seed); err != nil {
		log.Fatalf("❌ Failed to seed admin user: %v", err)
	}
}
