// Package config loads process configuration from the environment, with a
// .env file as a convenience for local runs.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the sync jobs need. There is no other persisted
// state.
type Config struct {
	LarkAppID     string
	LarkAppSecret string
	LarkBaseToken string
	LarkTableID   string
	LarkBaseURL   string

	BQProject string
	BQDataset string
	BQTable   string

	MaxWorkers   int
	MaxRetries   int
	FetchTimeout time.Duration
	DaysBack     int
}

// Load reads configuration, preferring the environment over .env over the
// built-in defaults. A missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		LarkAppID:     getenv("LARK_APP_ID", ""),
		LarkAppSecret: getenv("LARK_APP_SECRET", ""),
		LarkBaseToken: getenv("LARK_BASE_TOKEN", "GI8Ubcp0BaTn9PsY1xbl5zMagJb"),
		LarkTableID:   getenv("LARK_TABLE_ID", "tblB5MS7TOcNX1Hi"),
		LarkBaseURL:   getenv("LARK_BASE_URL", ""),

		BQProject: getenv("BQ_PROJECT_ID", "atino-vietnam"),
		BQDataset: getenv("BQ_DATASET_ID", "P_and_L"),
		BQTable:   getenv("BQ_TABLE_ID", "Bills_revenue"),

		MaxWorkers:   getenvInt("SYNC_MAX_WORKERS", 10),
		MaxRetries:   getenvInt("SYNC_MAX_RETRIES", 3),
		FetchTimeout: time.Duration(getenvInt("SYNC_FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		DaysBack:     getenvInt("SYNC_DAYS_BACK", 1),
	}
}

// Validate checks the fields every job needs before any network call.
func (c Config) Validate() error {
	if c.LarkAppID == "" || c.LarkAppSecret == "" {
		return errors.New("LARK_APP_ID and LARK_APP_SECRET must be set")
	}
	if c.LarkBaseToken == "" || c.LarkTableID == "" {
		return errors.New("LARK_BASE_TOKEN and LARK_TABLE_ID must be set")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
