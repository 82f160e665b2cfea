package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Export   ExportConfig   `yaml:"export"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true,
}

// Dir returns ~/.config/stride.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "stride"), nil
}

// DefaultPath returns ~/.config/stride/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dir, "stride.db")},
		Log:      LogConfig{File: filepath.Join(dir, "stride.log"), Level: "info"},
		Export:   ExportConfig{Dir: home},
	}, nil
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. A missing file is not an error.
//
//	STRIDE_DB, STRIDE_LOG_FILE, STRIDE_LOG_LEVEL, STRIDE_EXPORT_DIR
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STRIDE_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("STRIDE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("STRIDE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STRIDE_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
}

func (c *Config) expand() error {
	for _, p := range []*string{&c.Database.Path, &c.Log.File, &c.Export.Dir} {
		v, err := expandHome(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = v
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("log.level %q is not one of trace, debug, info, warn, error, fatal", c.Log.Level)
	}
	return nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
