package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret   = "a-very-secret-key-should-be-longer-and-random"
	defaultRateLimit   = "120-M"
	defaultSheetsRange = "Snapshots"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsURL  string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	RateLimit      string
	AllowedOrigins []string

	// Google Sheets snapshot sync. Disabled when SheetsSpreadsheetID is empty.
	SheetsSpreadsheetID   string `mapstructure:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	SheetsCredentialsJSON string `mapstructure:"GOOGLE_SHEETS_CREDENTIALS_JSON"`
	SheetsRange           string `mapstructure:"GOOGLE_SHEETS_RANGE"`
	SheetsTimeout         time.Duration
}

// SheetsEnabled reports whether snapshot sync is configured.
func (c *Config) SheetsEnabled() bool {
	return c.SheetsSpreadsheetID != "" && c.SheetsCredentialsJSON != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_URL", "file://migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("GOOGLE_SHEETS_SPREADSHEET_ID", "")
	v.SetDefault("GOOGLE_SHEETS_CREDENTIALS_JSON", "")
	v.SetDefault("GOOGLE_SHEETS_RANGE", defaultSheetsRange)
	v.SetDefault("GOOGLE_SHEETS_TIMEOUT", "15s")

	// Environment variables override the defaults and the .env file.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:           v.GetString("PGSQL_URL"),
		MigrationsURL:         v.GetString("MIGRATIONS_URL"),
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		RateLimit:             v.GetString("RATE_LIMIT"),
		AllowedOrigins:        splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		SheetsSpreadsheetID:   v.GetString("GOOGLE_SHEETS_SPREADSHEET_ID"),
		SheetsCredentialsJSON: v.GetString("GOOGLE_SHEETS_CREDENTIALS_JSON"),
		SheetsRange:           v.GetString("GOOGLE_SHEETS_RANGE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}

	if cfg.SheetsRange == "" {
		cfg.SheetsRange = defaultSheetsRange
	}

	timeoutStr := v.GetString("GOOGLE_SHEETS_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for GOOGLE_SHEETS_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.SheetsTimeout = timeout

	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsJSON == "" {
		log.Println("Warning: GOOGLE_SHEETS_CREDENTIALS_JSON not set. Sheets sync will not function.")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
