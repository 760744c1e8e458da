// Package config handles XDG configuration directory and file paths.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "taskdash"

	// UserFile holds the serialized session user. This is the single
	// durable-storage entry read at startup and cleared on logout.
	UserFile = "user.json"

	// CookieFile holds session cookies so the cookie-based login
	// survives across process runs.
	CookieFile = "cookies.json"

	// SettingsFile holds local settings (server URL, theme).
	SettingsFile = "settings.json"

	// DefaultServerURL is used when no --server flag or setting is present.
	DefaultServerURL = "http://127.0.0.1:5000"
)

// Settings are local, non-credential preferences.
type Settings struct {
	ServerURL string `json:"server_url,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the dashboard API base URL.
	ServerURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskdash or $HOME/.config/taskdash.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, ServerURL: DefaultServerURL}
	if s, err := cfg.LoadSettings(); err == nil && s.ServerURL != "" {
		cfg.ServerURL = s.ServerURL
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// UserPath returns the path to the persisted session user file.
func (c *Config) UserPath() string {
	return filepath.Join(c.Dir, UserFile)
}

// CookiePath returns the path to the persisted cookie jar file.
func (c *Config) CookiePath() string {
	return filepath.Join(c.Dir, CookieFile)
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasUser checks if a session user is persisted.
func (c *Config) HasUser() bool {
	_, err := os.Stat(c.UserPath())
	return err == nil
}

// RemoveUser deletes the persisted session user.
func (c *Config) RemoveUser() error {
	return os.Remove(c.UserPath())
}

// RemoveCookies deletes the persisted cookie jar.
func (c *Config) RemoveCookies() error {
	return os.Remove(c.CookiePath())
}

// LoadSettings reads the settings file. A missing file yields zero Settings.
func (c *Config) LoadSettings() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(c.SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SaveSettings writes the settings file with mode 0600.
func (c *Config) SaveSettings(s Settings) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.SettingsPath(), data, 0600)
}
