package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default budget values used when nothing has been persisted yet.
const (
	DefaultWeeklyBudget    = 100.0
	DefaultPricePerServing = 10.0
	DefaultCurrency        = "USD"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir  string
	DBPath   string
	LogLevel string

	// Budget defaults applied when the preference store loads empty.
	WeeklyBudget    float64
	PricePerServing float64
	Currency        string
}

// NewFromEnv creates a new Config from environment variables. Every value
// has a default; only malformed numbers produce an error.
func NewFromEnv() (*Config, error) {
	dataDir := os.Getenv("WHISKPLAN_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := os.Getenv("WHISKPLAN_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "whiskplan.db")
	}

	weekly := DefaultWeeklyBudget
	if v := os.Getenv("WHISKPLAN_WEEKLY_BUDGET"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WHISKPLAN_WEEKLY_BUDGET %q: %w", v, err)
		}
		weekly = parsed
	}

	perServing := DefaultPricePerServing
	if v := os.Getenv("WHISKPLAN_PRICE_PER_SERVING"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WHISKPLAN_PRICE_PER_SERVING %q: %w", v, err)
		}
		perServing = parsed
	}

	currency := os.Getenv("WHISKPLAN_CURRENCY")
	if currency == "" {
		currency = DefaultCurrency
	}

	return &Config{
		DataDir:         dataDir,
		DBPath:          dbPath,
		LogLevel:        os.Getenv("WHISKPLAN_LOG_LEVEL"),
		WeeklyBudget:    weekly,
		PricePerServing: perServing,
		Currency:        currency,
	}, nil
}
