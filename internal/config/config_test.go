package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHELFQ_DB_PATH", "/tmp/shelfq-test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Output != "table" {
		t.Errorf("Output = %q, want table", cfg.Output)
	}
	if cfg.MergePolicy != "fill" {
		t.Errorf("MergePolicy = %q, want fill", cfg.MergePolicy)
	}
	if cfg.LookupRPS <= 0 {
		t.Errorf("LookupRPS = %d, want positive", cfg.LookupRPS)
	}
	if cfg.LogLevel == "" {
		t.Error("LogLevel not defaulted")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHELFQ_DB_PATH", "/tmp/custom.db")
	t.Setenv("SHELFQ_OUTPUT", "json")
	t.Setenv("SHELFQ_MERGE_POLICY", "overwrite")
	t.Setenv("SHELFQ_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.MergePolicy != "overwrite" {
		t.Errorf("MergePolicy = %q", cfg.MergePolicy)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestGetEnvOrFileFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/dbpath"
	if err := os.WriteFile(path, []byte("/tmp/from-file.db"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SHELFQ_DB_PATH", "")
	t.Setenv("SHELFQ_DB_PATH_FILE", path)

	if got := getEnvOrFile("SHELFQ_DB_PATH", "SHELFQ_DB_PATH_FILE"); got != "/tmp/from-file.db" {
		t.Errorf("getEnvOrFile() = %q", got)
	}
}
