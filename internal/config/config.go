package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "scrapedesk.json5"

// Config holds the client settings.
type Config struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Timeout is a Go duration string; empty means requests never time out.
	Timeout  string `json:"timeout"`
	DataDir  string `json:"data_dir"`
	LogLevel string `json:"log_level"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		BaseURL:  "http://127.0.0.1:5000/api",
		LogLevel: "warn",
	}
}

// FromEnv reads the SCRAPEDESK_* environment variables.
func FromEnv() Config {
	return Config{
		BaseURL:  os.Getenv("SCRAPEDESK_BASE_URL"),
		Username: os.Getenv("SCRAPEDESK_USERNAME"),
		Password: os.Getenv("SCRAPEDESK_PASSWORD"),
		Timeout:  os.Getenv("SCRAPEDESK_TIMEOUT"),
		DataDir:  os.Getenv("SCRAPEDESK_DATA_DIR"),
		LogLevel: os.Getenv("SCRAPEDESK_LOG_LEVEL"),
	}
}

// Load layers defaults, the config file at path, its local sibling (see
// LocalPath) and the environment, later layers winning. Missing files are
// skipped. Callers validate after layering flags on top.
func Load(path string) (Config, error) {
	cfg := Defaults()
	for _, p := range []string{path, LocalPath(path)} {
		file, err := readFile(p)
		if err != nil {
			return cfg, err
		}
		if err := Override(&cfg, file); err != nil {
			return cfg, err
		}
	}
	if err := Override(&cfg, FromEnv()); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LocalPath returns the untracked override file kept next to path:
// scrapedesk.local.json5 for scrapedesk.json5.
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func readFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	slog.Debug("config file loaded", "path", path)
	return cfg, nil
}

// Override copies every non-empty field of src onto dst.
func Override(dst *Config, src Config) error {
	return mergo.Merge(dst, src, mergo.WithOverride)
}

// Validate checks the values that can be checked without the network.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must be set")
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses Timeout.
func (c Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// Level maps LogLevel onto a slog level, defaulting to warn.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
