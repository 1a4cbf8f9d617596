// Package config loads the field console configuration: defaults, then the
// optional ~/.fieldops/config.yaml, then FIELDOPS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user directory holding the config file and the local store.
	Dir = ".fieldops"

	FileName = "config.yaml"
)

type Config struct {
	APIURL        string        `yaml:"api_url"`
	Timeout       time.Duration `yaml:"timeout"`
	DBPath        string        `yaml:"db_path"`
	Team          string        `yaml:"team"`
	Platform      string        `yaml:"platform"`
	Location      string        `yaml:"location"`
	ReportFix     bool          `yaml:"report_location"`
	FallbackDelay time.Duration `yaml:"fallback_delay"`
	LogFile       string        `yaml:"log_file"`
	LogLevel      string        `yaml:"log_level"`
}

// Default returns the configuration used when nothing is set. home may be
// empty, in which case paths are left for the caller to fill.
func Default(home string) Config {
	cfg := Config{
		APIURL:        "http://localhost:8080/v1",
		Timeout:       30 * time.Second,
		ReportFix:     true,
		FallbackDelay: 1500 * time.Millisecond,
		LogLevel:      "info",
	}
	if home != "" {
		cfg.DBPath = filepath.Join(home, Dir, "fieldops.db")
		cfg.LogFile = filepath.Join(home, Dir, "fieldops.log")
	}
	return cfg
}

// DefaultPath is ~/.fieldops/config.yaml.
func DefaultPath(home string) string {
	return filepath.Join(home, Dir, FileName)
}

// Load applies the YAML file at path (a missing file is fine) and then the
// environment over the defaults.
func Load(path, home string) (Config, error) {
	cfg := Default(home)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("FIELDOPS_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("FIELDOPS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FIELDOPS_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("FIELDOPS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FIELDOPS_TEAM"); v != "" {
		cfg.Team = v
	}
	if v := os.Getenv("FIELDOPS_PLATFORM"); v != "" {
		cfg.Platform = v
	}
	if v := os.Getenv("FIELDOPS_LOCATION"); v != "" {
		cfg.Location = v
	}
	if v := os.Getenv("FIELDOPS_REPORT_LOCATION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FIELDOPS_REPORT_LOCATION: %w", err)
		}
		cfg.ReportFix = b
	}
	if v := os.Getenv("FIELDOPS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("FIELDOPS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// Save writes cfg as YAML, creating the directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
