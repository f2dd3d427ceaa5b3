// Package config loads the viewer's JSON configuration. Every field is
// optional; the Get* accessors supply defaults for anything left out.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/banshee-data/agnite/internal/agn"
)

// DefaultConfigPath is the canonical defaults file.
const DefaultConfigPath = "config/agnite.defaults.json"

const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// ArchetypeOverride swaps the dataset or example object of one archetype.
type ArchetypeOverride struct {
	DatasetKey string `json:"dataset_key,omitempty"`
	ObjectName string `json:"object_name,omitempty"`
}

// Config is the root configuration.
type Config struct {
	Listen  *string `json:"listen,omitempty"`
	DataDir *string `json:"data_dir,omitempty"`
	DBPath  *string `json:"db_path,omitempty"`
	// Source selects where spectra are read from: "csv" or "sqlite".
	Source  *string `json:"source,omitempty"`
	Preload *bool   `json:"preload,omitempty"`

	PhotometryURL       *string  `json:"photometry_url,omitempty"`
	PhotometryTimeout   *string  `json:"photometry_timeout,omitempty"` // duration string like "10s"
	PhotometryRateLimit *float64 `json:"photometry_rate_limit,omitempty"`

	SessionIdleTimeout   *string `json:"session_idle_timeout,omitempty"`
	SessionSweepInterval *string `json:"session_sweep_interval,omitempty"`

	PlotWidthIn  *float64 `json:"plot_width_in,omitempty"`
	PlotHeightIn *float64 `json:"plot_height_in,omitempty"`

	// Archetypes is keyed by archetype slug, e.g. "seyfert-2".
	Archetypes map[string]ArchetypeOverride `json:"archetypes,omitempty"`
}

// LoadConfig reads and validates a JSON config file. The file must have a
// .json extension and be at most 1 MB.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every set field.
func (c *Config) Validate() error {
	if c.Source != nil {
		switch *c.Source {
		case SourceCSV, SourceSQLite:
		default:
			return fmt.Errorf("source must be %q or %q, got %q", SourceCSV, SourceSQLite, *c.Source)
		}
	}

	durations := []struct {
		name string
		val  *string
	}{
		{"photometry_timeout", c.PhotometryTimeout},
		{"session_idle_timeout", c.SessionIdleTimeout},
		{"session_sweep_interval", c.SessionSweepInterval},
	}
	for _, d := range durations {
		if d.val == nil || *d.val == "" {
			continue
		}
		v, err := time.ParseDuration(*d.val)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", d.name, *d.val, err)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, *d.val)
		}
	}

	if c.PhotometryRateLimit != nil && *c.PhotometryRateLimit < 0 {
		return fmt.Errorf("photometry_rate_limit must be non-negative, got %f", *c.PhotometryRateLimit)
	}
	if c.PhotometryURL != nil && *c.PhotometryURL != "" &&
		!strings.HasPrefix(*c.PhotometryURL, "http://") && !strings.HasPrefix(*c.PhotometryURL, "https://") {
		return fmt.Errorf("photometry_url must be an http(s) URL, got %q", *c.PhotometryURL)
	}
	if c.PlotWidthIn != nil && *c.PlotWidthIn <= 0 {
		return fmt.Errorf("plot_width_in must be positive, got %f", *c.PlotWidthIn)
	}
	if c.PlotHeightIn != nil && *c.PlotHeightIn <= 0 {
		return fmt.Errorf("plot_height_in must be positive, got %f", *c.PlotHeightIn)
	}

	if _, err := c.Classifier(); err != nil {
		return err
	}
	return nil
}

// Classifier builds the archetype table with the configured overrides.
func (c *Config) Classifier() (*agn.Classifier, error) {
	if len(c.Archetypes) == 0 {
		return agn.Default(), nil
	}
	overrides := make(map[agn.Archetype]agn.Override, len(c.Archetypes))
	for slug, o := range c.Archetypes {
		a, err := agn.ParseArchetype(slug)
		if err != nil {
			return nil, fmt.Errorf("archetypes: %w", err)
		}
		if o.DatasetKey == "" && strings.TrimSpace(o.ObjectName) == "" {
			return nil, fmt.Errorf("archetypes.%s: override sets neither dataset_key nor object_name", slug)
		}
		overrides[a] = agn.Override{DatasetKey: o.DatasetKey, ObjectName: strings.TrimSpace(o.ObjectName)}
	}
	return agn.NewClassifier(overrides)
}

func durationOr(v *string, def time.Duration) time.Duration {
	if v == nil || *v == "" {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// GetListen returns the HTTP listen address.
func (c *Config) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return ":8080"
	}
	return *c.Listen
}

// GetDataDir returns the directory holding BASS_DR1_<key>.csv files.
func (c *Config) GetDataDir() string {
	if c.DataDir == nil || *c.DataDir == "" {
		return "data"
	}
	return *c.DataDir
}

// GetDBPath returns the SQLite archive path.
func (c *Config) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return "agnite.db"
	}
	return *c.DBPath
}

// GetSource returns the spectrum source kind.
func (c *Config) GetSource() string {
	if c.Source == nil || *c.Source == "" {
		return SourceCSV
	}
	return *c.Source
}

// GetPreload reports whether all datasets are loaded at startup.
func (c *Config) GetPreload() bool {
	if c.Preload == nil {
		return false
	}
	return *c.Preload
}

// GetPhotometryURL returns the photometry service base URL; empty disables
// SED endpoints.
func (c *Config) GetPhotometryURL() string {
	if c.PhotometryURL == nil {
		return ""
	}
	return *c.PhotometryURL
}

// GetPhotometryTimeout returns the per-request photometry timeout.
func (c *Config) GetPhotometryTimeout() time.Duration {
	return durationOr(c.PhotometryTimeout, 10*time.Second)
}

// GetPhotometryRateLimit returns the photometry request rate per second.
func (c *Config) GetPhotometryRateLimit() float64 {
	if c.PhotometryRateLimit == nil {
		return 2
	}
	return *c.PhotometryRateLimit
}

// GetSessionIdleTimeout returns how long unused sessions live.
func (c *Config) GetSessionIdleTimeout() time.Duration {
	return durationOr(c.SessionIdleTimeout, 30*time.Minute)
}

// GetSessionSweepInterval returns how often idle sessions are evicted.
func (c *Config) GetSessionSweepInterval() time.Duration {
	return durationOr(c.SessionSweepInterval, time.Minute)
}

// GetPlotWidthIn returns the PNG width in inches.
func (c *Config) GetPlotWidthIn() float64 {
	if c.PlotWidthIn == nil {
		return 10
	}
	return *c.PlotWidthIn
}

// GetPlotHeightIn returns the PNG height in inches.
func (c *Config) GetPlotHeightIn() float64 {
	if c.PlotHeightIn == nil {
		return 5
	}
	return *c.PlotHeightIn
}
