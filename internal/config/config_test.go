package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/agnite/internal/agn"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.GetListen() != ":8080" {
		t.Errorf("GetListen() = %q", cfg.GetListen())
	}
	if cfg.GetSource() != SourceCSV {
		t.Errorf("GetSource() = %q", cfg.GetSource())
	}
	if cfg.GetPreload() {
		t.Error("GetPreload() should default to false")
	}
	if cfg.GetPhotometryURL() != "" {
		t.Errorf("GetPhotometryURL() = %q", cfg.GetPhotometryURL())
	}
	if cfg.GetPhotometryTimeout() != 10*time.Second {
		t.Errorf("GetPhotometryTimeout() = %v", cfg.GetPhotometryTimeout())
	}
	if cfg.GetPhotometryRateLimit() != 2 {
		t.Errorf("GetPhotometryRateLimit() = %v", cfg.GetPhotometryRateLimit())
	}
	if cfg.GetSessionIdleTimeout() != 30*time.Minute {
		t.Errorf("GetSessionIdleTimeout() = %v", cfg.GetSessionIdleTimeout())
	}
	if cfg.GetSessionSweepInterval() != time.Minute {
		t.Errorf("GetSessionSweepInterval() = %v", cfg.GetSessionSweepInterval())
	}
	if cfg.GetPlotWidthIn() != 10 || cfg.GetPlotHeightIn() != 5 {
		t.Errorf("plot size = %v x %v", cfg.GetPlotWidthIn(), cfg.GetPlotHeightIn())
	}
	c, err := cfg.Classifier()
	if err != nil || c != agn.Default() {
		t.Errorf("Classifier() = %v, %v; want default", c, err)
	}
}

func TestLoadDefaultsFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("LoadConfig(defaults) failed: %v", err)
	}
	if cfg.GetDataDir() != "data" || cfg.GetDBPath() != "agnite.db" {
		t.Errorf("unexpected paths %q %q", cfg.GetDataDir(), cfg.GetDBPath())
	}
	if cfg.GetSessionIdleTimeout() != 30*time.Minute {
		t.Errorf("idle timeout = %v", cfg.GetSessionIdleTimeout())
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "agnite.json", `{
  "listen": ":9000",
  "source": "sqlite",
  "preload": true,
  "photometry_url": "https://photometry.example/api",
  "photometry_timeout": "3s",
  "session_idle_timeout": "5m",
  "archetypes": {
    "seyfert-2": {"object_name": "NGC 1068"},
    "blazar": {"dataset_key": "0123", "object_name": "BL Lac"}
  }
}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.GetListen() != ":9000" || cfg.GetSource() != SourceSQLite || !cfg.GetPreload() {
		t.Errorf("unexpected values: %q %q %v", cfg.GetListen(), cfg.GetSource(), cfg.GetPreload())
	}
	if cfg.GetPhotometryTimeout() != 3*time.Second {
		t.Errorf("GetPhotometryTimeout() = %v", cfg.GetPhotometryTimeout())
	}
	// Unset fields keep defaults.
	if cfg.GetSessionSweepInterval() != time.Minute {
		t.Errorf("GetSessionSweepInterval() = %v", cfg.GetSessionSweepInterval())
	}

	c, err := cfg.Classifier()
	if err != nil {
		t.Fatalf("Classifier: %v", err)
	}
	got, err := c.Classify(80)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.DatasetKey != "0123" || got.ObjectName != "BL Lac" {
		t.Errorf("blazar override not applied: %+v", got)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"extension", "agnite.yaml", `{}`, ".json extension"},
		{"syntax", "a.json", `{"listen":`, "parse"},
		{"source", "a.json", `{"source":"fits"}`, "source must be"},
		{"duration", "a.json", `{"session_idle_timeout":"soon"}`, "session_idle_timeout"},
		{"negative duration", "a.json", `{"photometry_timeout":"-1s"}`, "must be positive"},
		{"rate", "a.json", `{"photometry_rate_limit":-1}`, "photometry_rate_limit"},
		{"url", "a.json", `{"photometry_url":"ftp://x"}`, "photometry_url"},
		{"width", "a.json", `{"plot_width_in":0}`, "plot_width_in"},
		{"archetype slug", "a.json", `{"archetypes":{"quasar":{"object_name":"x"}}}`, "unknown archetype"},
		{"dataset key", "a.json", `{"archetypes":{"blazar":{"dataset_key":"12a"}}}`, "4 digits"},
		{"empty override", "a.json", `{"archetypes":{"blazar":{}}}`, "neither"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_TooLarge(t *testing.T) {
	big := `{"listen":"` + strings.Repeat("x", 1024*1024) + `"}`
	_, err := LoadConfig(writeConfig(t, "big.json", big))
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("expected size error, got %v", err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
