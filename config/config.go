package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the tracker's configuration.
type Config struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Display DisplayConfig `json:"display" yaml:"display"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// StorageConfig selects where the trade log is persisted.
type StorageConfig struct {
	Type   string `json:"type" yaml:"type"` // "file" or "sqlite"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// DisplayConfig only affects how amounts are printed.
type DisplayConfig struct {
	Currency string `json:"currency" yaml:"currency"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"` // debug, info, warn, error
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths, JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads a .env file from the working directory, if present, and
// lets PNL_* variables override the file settings.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("PNL_STORAGE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("PNL_DATA_DIR"); v != "" {
		c.Storage.Dir = v
		c.Storage.DBPath = filepath.Join(v, "pnl.sqlite")
	}
	if v := os.Getenv("PNL_CURRENCY"); v != "" {
		c.Display.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv("PNL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "file":
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir required for file storage")
		}
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage.db_path required for sqlite storage")
		}
	default:
		return fmt.Errorf("storage.type must be 'file' or 'sqlite'")
	}
	if c.Display.Currency == "" {
		return fmt.Errorf("display.currency is required")
	}
	if money.GetCurrency(c.Display.Currency) == nil {
		return fmt.Errorf("unknown currency: %s", c.Display.Currency)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// DefaultDir is where trades are kept when nothing else is configured:
// $XDG_DATA_HOME/pnl or ~/.local/share/pnl.
func DefaultDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "pnl")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "pnl")
	}
	return ".pnl"
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	dir := DefaultDir()
	return &Config{
		Storage: StorageConfig{
			Type:   "file",
			Dir:    dir,
			DBPath: filepath.Join(dir, "pnl.sqlite"),
		},
		Display: DisplayConfig{
			Currency: "USD",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
