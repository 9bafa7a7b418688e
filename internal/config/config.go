package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/dafibh/fortuna/profit-loss-function/internal/domain"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the function
type Config struct {
	// Appwrite
	Appwrite AppwriteConfig

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Report
	PageSize int
	Location *time.Location

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int
}

// AppwriteConfig identifies the document database and the two source collections
type AppwriteConfig struct {
	Endpoint             string
	Project              string
	APIKey               string
	DatabaseID           string
	OrdersCollectionID   string
	ExpensesCollectionID string
	Timeout              time.Duration
}

// Load reads configuration from environment variables.
// Appwrite settings are not validated here; see AppwriteConfig.Validate.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	pageSize, err := getEnvInt("PAGE_SIZE", domain.DefaultPageSize)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive")
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("REPORT_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	perMinute, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		Appwrite: AppwriteConfig{
			Endpoint:             getEnv("APPWRITE_ENDPOINT", ""),
			Project:              getEnv("APPWRITE_PROJECT", ""),
			APIKey:               getEnv("APPWRITE_API_KEY", ""),
			DatabaseID:           getEnv("APPWRITE_DATABASE_ID", ""),
			OrdersCollectionID:   getEnv("ORDERS_COLLECTION_ID", ""),
			ExpensesCollectionID: getEnv("EXPENSES_COLLECTION_ID", ""),
			Timeout:              timeout,
		},
		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		Env:                getEnv("ENV", "development"),
		PageSize:           pageSize,
		Location:           loc,
		RateLimitPerMinute: perMinute,
		RateLimitBurst:     burst,
	}, nil
}

// Validate checks that all six Appwrite values are present
func (c AppwriteConfig) Validate() error {
	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{"APPWRITE_ENDPOINT", c.Endpoint},
		{"APPWRITE_PROJECT", c.Project},
		{"APPWRITE_API_KEY", c.APIKey},
		{"APPWRITE_DATABASE_ID", c.DatabaseID},
		{"ORDERS_COLLECTION_ID", c.OrdersCollectionID},
		{"EXPENSES_COLLECTION_ID", c.ExpensesCollectionID},
	} {
		if strings.TrimSpace(v.value) == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
