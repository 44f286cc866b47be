package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// Persistence. StoreBackend is "sqlite", "postgres" or "sheets".
	StoreBackend string
	DatabaseURL  string
	SQLitePath   string
	StoreTimeout int // seconds per store call

	// Cart sessions. Redis when set, in-memory otherwise.
	RedisURL       string
	SessionTimeout int // seconds a cart session lives

	// Google Sheets backend.
	SheetsCredentialsFile string
	SpreadsheetID         string
	SheetName             string
	SheetAppendMode       string // "append" or "rewrite"

	// Outbound mail.
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SenderEmail  string
	EmailTimeout int // seconds

	// Admin credential. The hash wins when both are set.
	AdminPassword     string
	AdminPasswordHash string

	// Encryption-at-rest for personal fields; disabled when the
	// password is empty.
	EncryptPassword string
	EncryptSalt     string

	// Checkout rules.
	RequireAddress   bool
	PhoneCountryCode string
	PhoneTrunkPrefix string

	// Optional catalog override.
	CatalogFile string

	// Banking details shown to customers at checkout.
	JazzCashNumber  string
	EasyPaisaNumber string
	RaastNumber     string
	BankName        string
	BankAccountName string
	BankAccount     string
	BankIBAN        string
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		StoreBackend: getEnv("STORE_BACKEND", "sqlite"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "tumble_cup.db"),
		StoreTimeout: getEnvAsInt("STORE_TIMEOUT", 5),

		RedisURL:       getEnv("REDIS_URL", ""),
		SessionTimeout: getEnvAsInt("SESSION_TIMEOUT", 3600),

		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", "credentials.json"),
		SpreadsheetID:         getEnv("SPREADSHEET_ID", ""),
		SheetName:             getEnv("SHEET_NAME", "Tumble_cup"),
		SheetAppendMode:       getEnv("SHEET_APPEND_MODE", "append"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 465),
		SMTPUser:     getEnv("SMTP_USER", "teamtumblecup@gmail.com"),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "teamtumblecup@gmail.com"),
		EmailTimeout: getEnvAsInt("EMAIL_TIMEOUT", 30),

		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		EncryptPassword: getEnv("ENCRYPT_PASSWORD", ""),
		EncryptSalt:     getEnv("ENCRYPT_SALT", ""),

		RequireAddress:   getEnvAsBool("REQUIRE_ADDRESS", true),
		PhoneCountryCode: getEnv("PHONE_COUNTRY_CODE", "92"),
		PhoneTrunkPrefix: getEnv("PHONE_TRUNK_PREFIX", "0"),

		CatalogFile: getEnv("CATALOG_FILE", ""),

		JazzCashNumber:  getEnv("JAZZCASH_NUMBER", ""),
		EasyPaisaNumber: getEnv("EASYPAISA_NUMBER", ""),
		RaastNumber:     getEnv("RAAST_NUMBER", ""),
		BankName:        getEnv("BANK_NAME", "HBL"),
		BankAccountName: getEnv("BANK_ACCOUNT_NAME", ""),
		BankAccount:     getEnv("BANK_ACCOUNT", ""),
		BankIBAN:        getEnv("BANK_IBAN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
