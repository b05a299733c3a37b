package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Report.TopPCs != 10 {
		t.Errorf("expected TopPCs=10, got %d", cfg.Report.TopPCs)
	}
	if cfg.Report.Context != 3 {
		t.Errorf("expected Context=3, got %d", cfg.Report.Context)
	}
	if cfg.Report.ExitCodes || cfg.Report.ShowProgram {
		t.Error("expected optional sections to be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	// Ensure no env vars interfere
	t.Setenv("TRACESTAT_LOG_LEVEL", "")
	t.Setenv("TRACESTAT_TOP", "")
	t.Setenv("TRACESTAT_CONTEXT", "")

	path := filepath.Join(t.TempDir(), "nested", "tracestat.yaml")

	cfg := DefaultConfig()
	cfg.Report.TopPCs = 4
	cfg.Report.ShowProgram = true
	cfg.Logging.Format = "json"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Report.TopPCs != 4 {
		t.Errorf("expected TopPCs=4, got %d", loaded.Report.TopPCs)
	}
	if !loaded.Report.ShowProgram {
		t.Error("expected ShowProgram=true")
	}
	if loaded.Logging.Format != "json" {
		t.Errorf("expected Format=json, got %s", loaded.Logging.Format)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TRACESTAT_TOP", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Report.TopPCs != 10 {
		t.Errorf("expected default TopPCs, got %d", cfg.Report.TopPCs)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("TRACESTAT_CONTEXT", "")
	path := filepath.Join(t.TempDir(), "tracestat.yaml")
	if err := os.WriteFile(path, []byte("report:\n  top_pcs: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Report.TopPCs != 2 {
		t.Errorf("expected TopPCs=2, got %d", cfg.Report.TopPCs)
	}
	if cfg.Report.Context != 3 {
		t.Errorf("expected default Context=3, got %d", cfg.Report.Context)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracestat.yaml")
	if err := os.WriteFile(path, []byte("report: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Report.Context = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative context")
	}

	cfg = DefaultConfig()
	cfg.Report.TopPCs = -5
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative top_pcs")
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown log format")
	}
}
