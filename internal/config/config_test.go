package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.DisabledTools) != 0 {
		t.Error("DisabledTools should be empty by default")
	}
	if cfg.IsToolDisabled("get_ticker_info") {
		t.Error("no tool should be disabled by default")
	}
}

func TestLoad(t *testing.T) {
	jsonConfig := `{
		"disabledTools": [
			"download_multiple",
			"get_ticker_option_chain"
		]
	}`

	cfg, err := Load(bytes.NewBufferString(jsonConfig))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(cfg.DisabledTools) != 2 {
		t.Errorf("expected 2 disabled tools, got %d", len(cfg.DisabledTools))
	}
	if !cfg.IsToolDisabled("download_multiple") {
		t.Error("download_multiple should be disabled")
	}
	if cfg.IsToolDisabled("get_ticker_info") {
		t.Error("get_ticker_info should be enabled")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	if _, err := Load(bytes.NewBufferString("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadYAML(t *testing.T) {
	yamlConfig := "disabledTools:\n  - get_ticker_news\n"

	cfg, err := LoadYAML(bytes.NewBufferString(yamlConfig))
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if !cfg.IsToolDisabled("get_ticker_news") {
		t.Error("get_ticker_news should be disabled")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(jsonPath, []byte(`{"disabledTools":["get_ticker_isin"]}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to load file: %v", err)
	}
	if !cfg.IsToolDisabled("get_ticker_isin") {
		t.Error("get_ticker_isin should be disabled")
	}

	yamlPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(yamlPath, []byte("disabledTools: [search_tickers]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("Failed to load YAML file: %v", err)
	}
	if !cfg.IsToolDisabled("search_tickers") {
		t.Error("search_tickers should be disabled")
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got error: %v", err)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Error("missing file should yield default config")
	}

	cfg, err = LoadFile("")
	if err != nil {
		t.Fatalf("empty path should yield defaults, got error: %v", err)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Error("empty path should yield default config")
	}
}
