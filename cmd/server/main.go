package main

import (
	"context"
	"log"
	"time"
	"tumble_cup/internal/config"
	"tumble_cup/internal/crypto"
	"tumble_cup/internal/database"
	"tumble_cup/internal/handlers"
	"tumble_cup/internal/migrations"
	"tumble_cup/internal/models"
	"tumble_cup/internal/redis"
	"tumble_cup/internal/repository"
	"tumble_cup/internal/services"
	"tumble_cup/pkg/mailer"
	"tumble_cup/pkg/sheets"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Load catalog
	catalog := models.DefaultCatalog()
	if cfg.CatalogFile != "" {
		loaded, err := models.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			log.Fatal("Failed to load catalog:", err)
		}
		catalog = loaded
	}

	// Initialize the order store
	store, gormStore, err := buildStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize order store:", err)
	}

	// Initialize the cart session store
	var cartStore services.CartStore
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL, time.Duration(cfg.SessionTimeout)*time.Second)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		cartStore = redisClient
	} else {
		log.Println("No REDIS_URL configured, keeping cart sessions in memory")
		cartStore = services.NewMemoryCartStore()
	}

	// Initialize mail transport
	mailClient := mailer.NewClient(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
		cfg.SenderEmail, time.Duration(cfg.EmailTimeout)*time.Second,
	)

	// Initialize services
	validator := &services.CheckoutValidator{
		RequireAddress: cfg.RequireAddress,
		PhoneRule: services.PhoneRule{
			CountryCode: cfg.PhoneCountryCode,
			TrunkPrefix: cfg.PhoneTrunkPrefix,
		},
	}
	cartService := services.NewCartService(catalog, cartStore)
	mailService := services.NewMailService(mailClient)
	orderService := services.NewOrderService(store, cartService, cartStore, validator, mailService)

	// Initialize handlers
	shopHandler := handlers.NewShopHandler(cartService, orderService, cfg)
	checkPass := handlers.NewCredentialCheck(cfg.AdminPassword, cfg.AdminPasswordHash)
	adminHandler := handlers.NewAdminHandler(orderService, checkPass, gormStore)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/items", shopHandler.GetCatalog)
		api.GET("/payment-info", shopHandler.GetPaymentInfo)

		api.GET("/cart", shopHandler.GetCart)
		api.POST("/cart/items", shopHandler.AddToCart)
		api.DELETE("/cart/items", shopHandler.RemoveFromCart)
		api.DELETE("/cart", shopHandler.ClearCart)

		api.POST("/checkout", shopHandler.Checkout)

		admin := api.Group("/admin", adminHandler.Authenticate)
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/count", adminHandler.CountOrders)
			admin.GET("/orders/export", adminHandler.ExportCSV)
			admin.PUT("/orders/:id/status", adminHandler.UpdateStatus)
			admin.PUT("/orders/:id/payment-status", adminHandler.UpdatePaymentStatus)
			admin.DELETE("/orders/:id", adminHandler.DeleteOrder)
			admin.GET("/encryption-status", adminHandler.EncryptionStatus)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// buildStore wires the configured persistence backend. The second return
// is non-nil only for the relational backend.
func buildStore(cfg *config.Config) (repository.OrderStore, *repository.GormStore, error) {
	storeTimeout := time.Duration(cfg.StoreTimeout) * time.Second

	if cfg.StoreBackend == "sheets" {
		client, err := sheets.NewClient(context.Background(), cfg.SheetsCredentialsFile, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewSheetStore(client, repository.AppendMode(cfg.SheetAppendMode), storeTimeout)
		return store, nil, nil
	}

	db, err := database.Initialize(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunMigrations(db); err != nil {
		return nil, nil, err
	}

	var cipher *crypto.Cipher
	if cfg.EncryptPassword != "" {
		cipher, err = crypto.New(cfg.EncryptPassword, cfg.EncryptSalt)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Encryption at rest enabled for personal fields")
	}

	gormStore := repository.NewGormStore(db, cipher, storeTimeout)
	return gormStore, gormStore, nil
}
