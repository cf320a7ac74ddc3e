package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might affect defaults
	for _, key := range []string{"DATABASE_URL", "HTTP_PORT", "SHEETS_SPREADSHEET_ID", "DEFAULT_INITIAL_BALANCE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if !cfg.DefaultInitialBalance.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("DefaultInitialBalance = %s, want 100000", cfg.DefaultInitialBalance)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/testdb")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-123")
	t.Setenv("DEFAULT_INITIAL_BALANCE", "250000")

	cfg := Load()

	if cfg.DatabaseURL != "postgres://localhost/testdb" {
		t.Errorf("DatabaseURL = %q, want override", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.SheetsSpreadsheetID != "sheet-123" {
		t.Errorf("SheetsSpreadsheetID = %q, want sheet-123", cfg.SheetsSpreadsheetID)
	}
	if !cfg.DefaultInitialBalance.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("DefaultInitialBalance = %s, want 250000", cfg.DefaultInitialBalance)
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("DEFAULT_INITIAL_BALANCE", "not-a-number")

	cfg := Load()

	if !cfg.DefaultInitialBalance.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("DefaultInitialBalance = %s, want default 100000 on invalid input", cfg.DefaultInitialBalance)
	}
}
