// ABOUTME: hoplit configuration management with backend selection.
// ABOUTME: Handles the user, log level, data directory and storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/hoplit/internal/logging"
	"github.com/harperreed/hoplit/internal/storage"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// DefaultUserID owns logs when no user is configured.
const DefaultUserID = "local"

// Config stores hoplit configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts hoplit.db here. Badger uses the kv/ subdirectory.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/hoplit.
	DataDir string `json:"data_dir,omitempty"`

	// UserID scopes every log. Defaults to "local".
	UserID string `json:"user_id,omitempty"`

	// LogLevel is the diagnostic log level: debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUserID returns the configured user, defaulting to "local".
func (c *Config) GetUserID() string {
	if c.UserID == "" {
		return DefaultUserID
	}
	return c.UserID
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return logging.DefaultLevel
	}
	return c.LogLevel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// StoragePath returns where a backend keeps its data under the data directory.
func (c *Config) StoragePath(backend string) (string, error) {
	dataDir := c.GetDataDir()
	switch backend {
	case BackendSQLite:
		return filepath.Join(dataDir, "hoplit.db"), nil
	case BackendBadger:
		return filepath.Join(dataDir, "kv"), nil
	default:
		return "", fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend under the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	path, err := c.StoragePath(backend)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendSQLite:
		return storage.Open(path)
	default:
		return storage.OpenKV(path)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "hoplit", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
