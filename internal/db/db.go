package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"yilin/internal/models"
)

// Connect opens the Postgres connection and runs the schema migration. The
// returned handle is the single store client for the process; callers pass it
// explicitly to the repositories instead of reaching for a package global.
func Connect(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")

	if err := Migrate(database); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	return database, nil
}

// Migrate creates or updates the comment module's tables. Split out so tests
// can run it against their own database handle.
func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.Citizen{},
		&models.Comment{},
		&models.Reply{},
		&models.Vote{},
		&models.Flag{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
