package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/aerobridge/internal/observability"
)

// DirName is the per-project configuration directory.
const DirName = ".aerobridge"

// FileName is the configuration file inside DirName.
const FileName = "config.yaml"

// Config represents the aerobridge configuration
type Config struct {
	MissionFile    string `yaml:"mission_file,omitempty"`    // empty uses the embedded sample
	StepInterval   string `yaml:"step_interval,omitempty"`   // Go duration, e.g. "800ms"
	JournalPath    string `yaml:"journal_path,omitempty"`    // empty uses ~/.aerobridge/journal.db
	JournalEnabled *bool  `yaml:"journal_enabled,omitempty"` // nil means enabled
	LogLevel       string `yaml:"log_level,omitempty"`
	LogFormat      string `yaml:"log_format,omitempty"`
	Operator       string `yaml:"operator,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	enabled := true
	return &Config{
		StepInterval:   "800ms",
		JournalEnabled: &enabled,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Path returns the configuration file location for dir.
func Path(dir string) string {
	return filepath.Join(dir, DirName, FileName)
}

// LoadConfig reads .aerobridge/config.yaml from dir and merges it onto the
// defaults. A missing file is not an error.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Merge(DefaultConfig(), &file)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", Path(dir), err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to .aerobridge/config.yaml under dir.
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Merge returns a copy of base with every non-zero field of override applied.
func Merge(base, override *Config) *Config {
	out := *base
	if override == nil {
		return &out
	}
	if override.MissionFile != "" {
		out.MissionFile = override.MissionFile
	}
	if override.StepInterval != "" {
		out.StepInterval = override.StepInterval
	}
	if override.JournalPath != "" {
		out.JournalPath = override.JournalPath
	}
	if override.JournalEnabled != nil {
		enabled := *override.JournalEnabled
		out.JournalEnabled = &enabled
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.LogFormat != "" {
		out.LogFormat = override.LogFormat
	}
	if override.Operator != "" {
		out.Operator = override.Operator
	}
	return &out
}

// Validate rejects values the workflow cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Interval(); err != nil {
		return err
	}
	if _, err := observability.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.LogFormat)
	}
	return nil
}

// Interval parses StepInterval. Zero and negative intervals are rejected.
func (c *Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.StepInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid step interval %q: %w", c.StepInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("step interval must be positive, got %s", d)
	}
	return d, nil
}

// JournalOn reports whether session journaling is enabled.
func (c *Config) JournalOn() bool {
	return c.JournalEnabled == nil || *c.JournalEnabled
}
