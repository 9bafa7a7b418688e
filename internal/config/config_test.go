package config

import (
	"errors"
	"testing"
	"time"

	"github.com/dafibh/fortuna/profit-loss-function/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAppwriteEnv(t *testing.T) {
	t.Setenv("APPWRITE_ENDPOINT", "https://cloud.appwrite.io/v1")
	t.Setenv("APPWRITE_PROJECT", "shop")
	t.Setenv("APPWRITE_API_KEY", "secret")
	t.Setenv("APPWRITE_DATABASE_ID", "main")
	t.Setenv("ORDERS_COLLECTION_ID", "orders")
	t.Setenv("EXPENSES_COLLECTION_ID", "expenses")
}

func TestLoad_Defaults(t *testing.T) {
	setAppwriteEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("REPORT_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, domain.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, 10*time.Second, cfg.Appwrite.Timeout)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "orders", cfg.Appwrite.OrdersCollectionID)
	assert.Equal(t, "expenses", cfg.Appwrite.ExpensesCollectionID)
	assert.NoError(t, cfg.Appwrite.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	setAppwriteEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("REPORT_TIMEZONE", "Europe/Rome")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 3*time.Second, cfg.Appwrite.Timeout)
	assert.Equal(t, "Europe/Rome", cfg.Location.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric page size", "PAGE_SIZE", "lots"},
		{"zero page size", "PAGE_SIZE", "0"},
		{"bad timeout", "HTTP_TIMEOUT", "soon"},
		{"unknown timezone", "REPORT_TIMEZONE", "Mars/Olympus"},
		{"bad rate limit", "RATE_LIMIT_PER_MINUTE", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setAppwriteEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAppwriteConfig_Validate(t *testing.T) {
	valid := AppwriteConfig{
		Endpoint:             "https://cloud.appwrite.io/v1",
		Project:              "shop",
		APIKey:               "secret",
		DatabaseID:           "main",
		OrdersCollectionID:   "orders",
		ExpensesCollectionID: "expenses",
	}

	tests := []struct {
		name    string
		mutate  func(c *AppwriteConfig)
		wantErr bool
	}{
		{"all present", func(c *AppwriteConfig) {}, false},
		{"missing endpoint", func(c *AppwriteConfig) { c.Endpoint = "" }, true},
		{"missing project", func(c *AppwriteConfig) { c.Project = "" }, true},
		{"missing api key", func(c *AppwriteConfig) { c.APIKey = "" }, true},
		{"missing database", func(c *AppwriteConfig) { c.DatabaseID = "" }, true},
		{"missing orders collection", func(c *AppwriteConfig) { c.OrdersCollectionID = "" }, true},
		{"blank expenses collection", func(c *AppwriteConfig) { c.ExpensesCollectionID = "  " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMissingConfiguration))
		})
	}
}
