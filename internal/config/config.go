// Package config loads SkillPlan settings from ~/.skillplan/config.yaml and
// SKILLPLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Dir is the per-user directory holding the config, database and log.
const Dir = ".skillplan"

// EnvPrefix namespaces environment overrides, e.g. SKILLPLAN_LOG_LEVEL.
const EnvPrefix = "SKILLPLAN"

// Config represents the full SkillPlan configuration
type Config struct {
	// SQLite database file; empty means ~/.skillplan/skillplan.db
	DBPath string `yaml:"db_path" mapstructure:"db_path"`

	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Mode  string `yaml:"mode" mapstructure:"mode"`   // dev | prod
	Level string `yaml:"level" mapstructure:"level"` // debug | info | warn | error
	File  string `yaml:"file" mapstructure:"file"`   // empty logs to stderr
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DBPath: "",
		Log: LogConfig{
			Mode:  "prod",
			Level: "info",
			File:  filepath.Join(home, Dir, "skillplan.log"),
		},
	}
}

// DefaultPath returns ~/.skillplan/config.yaml
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads path (or the default path when empty) over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be registered for AutomaticEnv to see nested keys on Unmarshal.
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("log.mode", cfg.Log.Mode)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to path, refusing to overwrite.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: ensure dir: %w", err)
	}
	data, err := Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	header := "# SkillPlan configuration\n# Environment overrides: SKILLPLAN_DB_PATH, SKILLPLAN_LOG_LEVEL, ...\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}
