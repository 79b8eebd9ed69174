// Package app resolves where the tracker keeps its data and how it is configured.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MemoryDB selects a process-local store that is discarded on exit.
const MemoryDB = ":memory:"

const (
	DefaultHistorySize = 10
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultEnvFile     = ".env"
)

const (
	EnvDBPath      = "TRACKER_DB_PATH"
	EnvHistorySize = "TRACKER_HISTORY_SIZE"
	EnvLogLevel    = "TRACKER_LOG_LEVEL"
	EnvLogFormat   = "TRACKER_LOG_FORMAT"
	EnvFoodAPIURL  = "TRACKER_FOOD_API_URL"
)

type Config struct {
	DBPath      string `yaml:"db_path"`
	HistorySize int    `yaml:"history_size"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	FoodAPIURL  string `yaml:"food_api_url,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		HistorySize: DefaultHistorySize,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// LoadConfig layers defaults, the YAML file at path, envFile and the process
// environment, later sources winning. An empty path uses DefaultConfigPath and
// tolerates it being absent; an explicit path must exist. A missing envFile is
// ignored.
func LoadConfig(path, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	env, err := readEnv(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readEnv merges envFile under the process environment without mutating it.
func readEnv(envFile string) (map[string]string, error) {
	env := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			env = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}
	for _, key := range []string{EnvDBPath, EnvHistorySize, EnvLogLevel, EnvLogFormat, EnvFoodAPIURL} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	if v := strings.TrimSpace(env[EnvDBPath]); v != "" {
		c.DBPath = v
	}
	if v := strings.TrimSpace(env[EnvHistorySize]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", EnvHistorySize, err)
		}
		c.HistorySize = n
	}
	if v := strings.TrimSpace(env[EnvLogLevel]); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(env[EnvLogFormat]); v != "" {
		c.LogFormat = v
	}
	if v := strings.TrimSpace(env[EnvFoodAPIURL]); v != "" {
		c.FoodAPIURL = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HistorySize < 1 {
		return fmt.Errorf("history_size must be >= 1")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json")
	}
	return nil
}

func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
