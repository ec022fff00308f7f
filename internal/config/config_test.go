package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.BQProject != "atino-vietnam" || cfg.BQDataset != "P_and_L" || cfg.BQTable != "Bills_revenue" {
		t.Errorf("unexpected BigQuery defaults: %+v", cfg)
	}
	if cfg.MaxWorkers != 10 || cfg.MaxRetries != 3 || cfg.DaysBack != 1 {
		t.Errorf("unexpected tunable defaults: %+v", cfg)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %v, want 15s", cfg.FetchTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LARK_APP_ID", "cli_test")
	t.Setenv("SYNC_MAX_WORKERS", "4")
	t.Setenv("SYNC_FETCH_TIMEOUT_SECONDS", "30")

	cfg := Load()
	if cfg.LarkAppID != "cli_test" {
		t.Errorf("LarkAppID = %q", cfg.LarkAppID)
	}
	if cfg.MaxWorkers != 4 {
		t.Errorf("MaxWorkers = %d, want 4", cfg.MaxWorkers)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.FetchTimeout)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("SYNC_MAX_WORKERS", "not-a-number")
	if cfg := Load(); cfg.MaxWorkers != 10 {
		t.Errorf("MaxWorkers = %d, want fallback 10", cfg.MaxWorkers)
	}

	t.Setenv("SYNC_MAX_WORKERS", "-3")
	if cfg := Load(); cfg.MaxWorkers != 10 {
		t.Errorf("MaxWorkers = %d, want fallback 10 for non-positive", cfg.MaxWorkers)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{LarkBaseToken: "b", LarkTableID: "t"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing app credentials")
	}

	cfg.LarkAppID = "id"
	cfg.LarkAppSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.LarkTableID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing table id")
	}
}
