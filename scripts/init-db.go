package main

import (
	"fmt"
	"log"
	"time"
	"tumble_cup/internal/config"
	"tumble_cup/internal/crypto"
	"tumble_cup/internal/database"
	"tumble_cup/internal/migrations"
	"tumble_cup/internal/models"
	"tumble_cup/internal/repository"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate the orders table
	if err := migrations.Reset(db); err != nil {
		log.Fatal("Failed to reset database:", err)
	}

	var cipher *crypto.Cipher
	if cfg.EncryptPassword != "" {
		cipher, err = crypto.New(cfg.EncryptPassword, cfg.EncryptSalt)
		if err != nil {
			log.Fatal("Failed to initialize encryption:", err)
		}
		fmt.Println("Encryption at rest enabled")
	}

	store := repository.NewGormStore(db, cipher, time.Duration(cfg.StoreTimeout)*time.Second)

	// Seed one sample order so the admin panel has something to show
	inserted, err := store.Append([]*models.Order{{
		OrderNumber:   "#TC00001",
		CustomerName:  "Sample Customer",
		Email:         "sample@example.com",
		Phone:         "+923001234567",
		Address:       "123 Main Street",
		City:          "Karachi",
		PostalCode:    "74000",
		ItemName:      "Classic Tumbler",
		ItemStyle:     "Style 1",
		Quantity:      1,
		Price:         3999,
		TotalPrice:    3999,
		OrderDate:     time.Now(),
		PaymentMethod: string(models.CashOnDelivery),
		PaymentStatus: string(models.PaymentPending),
		Status:        string(models.StatusPending),
	}})
	if err != nil {
		log.Fatal("Failed to seed sample order:", err)
	}

	count, err := store.Count()
	if err != nil {
		log.Fatal("Failed to count orders:", err)
	}

	fmt.Printf("Database ready: %d sample order(s) seeded, %d record(s) total\n", inserted, count)
}
