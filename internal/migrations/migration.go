package migrations

import (
	"log"
	"tumble_cup/internal/models"

	"gorm.io/gorm"
)

// RunMigrations brings the orders schema up to date. Unlike the reset
// script this never drops data.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(&models.Order{}); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// Reset drops and recreates the orders table. Used by scripts/init-db.
func Reset(db *gorm.DB) error {
	log.Println("Dropping existing tables...")
	if err := db.Migrator().DropTable(&models.Order{}); err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	log.Println("Creating tables...")
	return db.AutoMigrate(&models.Order{})
}
