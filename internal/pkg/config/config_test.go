package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yuqie6/ScopeClicks/internal/calculator"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Storage.DBPath != "./database/riflescope_clicks.db" || !cfg.Storage.SeedDistances {
		t.Fatalf("storage=%+v", cfg.Storage)
	}
	if len(cfg.Defaults.Distances) != 7 {
		t.Fatalf("distances=%v", cfg.Defaults.Distances)
	}

	calc, err := cfg.Calculator.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if calc != calculator.DefaultConfig() {
		t.Fatalf("calc=%+v, want %+v", calc, calculator.DefaultConfig())
	}

	scope, err := cfg.Calculator.Scope()
	if err != nil {
		t.Fatalf("Scope error: %v", err)
	}
	if scope.Unit != calculator.ClickMOA || scope.Value != 0.25 || scope.Reference != unit.MustDistance(100, unit.Yard) {
		t.Fatalf("scope=%+v", scope)
	}

	seeds, err := cfg.Defaults.SeedDistances()
	if err != nil || len(seeds) != 7 || seeds[4] != unit.MustDistance(100, unit.Meter) {
		t.Fatalf("seeds=%v err=%v", seeds, err)
	}
}

func TestWriteFileAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config", "config.yaml")

	cfg := Default()
	cfg.Storage.DBPath = filepath.Join(dir, "db", "clicks.db")
	cfg.Calculator.ClickUnit = "mil"
	cfg.Calculator.ClickValue = 0.1
	cfg.Calculator.ReferenceDistance = "100m"
	cfg.Calculator.Rounding = "down"
	cfg.Defaults.Distances = []string{"100m", "300yd"}

	if err := WriteFile(path, cfg); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Storage.DBPath != cfg.Storage.DBPath {
		t.Fatalf("db_path=%q, want %q", got.Storage.DBPath, cfg.Storage.DBPath)
	}
	if got.Calculator.ClickUnit != "mil" || got.Calculator.ClickValue != 0.1 || got.Calculator.Rounding != "down" {
		t.Fatalf("calculator=%+v", got.Calculator)
	}
	seeds, err := got.Defaults.SeedDistances()
	if err != nil || len(seeds) != 2 || seeds[1] != unit.MustDistance(300, unit.Yard) {
		t.Fatalf("seeds=%v err=%v", seeds, err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("calculator:\n  moa_model: exact\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SCOPE_CALCULATOR_MOA_MODEL", "customary")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	calc, err := cfg.Calculator.Build()
	if err != nil || calc.MOA != unit.MOACustomary {
		t.Fatalf("calc=%+v err=%v", calc, err)
	}
}

func TestBuildRejectsUnknownRounding(t *testing.T) {
	c := Default().Calculator
	c.Rounding = "ceil"
	if _, err := c.Build(); err == nil {
		t.Fatalf("expected error for rounding=ceil")
	}
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scope.log")
	closer, err := SetupLogger(LoggerOptions{Level: "info", Path: path, Component: "test"})
	if err != nil {
		t.Fatalf("SetupLogger error: %v", err)
	}
	if closer == nil {
		t.Fatalf("closer is nil with file output")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file missing: %v", err)
	}

	closer, err = SetupLogger(LoggerOptions{Level: "warn"})
	if err != nil || closer != nil {
		t.Fatalf("stderr only: closer=%v err=%v", closer, err)
	}
}
