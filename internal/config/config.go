package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LogConfig controls the application logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`

	// File receives log output; empty means stderr for the server and
	// no logging for the TUI
	File string `yaml:"file"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Config holds the application configuration
type Config struct {
	// Theme is the color theme to use (mocha, macchiato, frappe, latte)
	Theme string `yaml:"theme"`

	// MenuFile is the YAML or JSON menu document to load and watch
	MenuFile string `yaml:"menu_file"`

	// MenuCommand is run instead of reading MenuFile when set; its stdout is a JSON menu
	MenuCommand []string `yaml:"menu_command"`

	// ActivePath is the route considered current at startup
	ActivePath string `yaml:"active_path"`

	// SearchDebounce is the quiet window before typed search text is applied
	SearchDebounce time.Duration `yaml:"search_debounce"`

	// SidebarOpen starts the sidebar expanded
	SidebarOpen bool `yaml:"sidebar_open"`

	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Theme:          "mocha",
		MenuFile:       "menu.yaml",
		SearchDebounce: 200 * time.Millisecond,
		SidebarOpen:    true,
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Load reads the config from a YAML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //nolint:gosec // config path from known locations
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil // Use defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFromDefaultPath attempts to load config from standard locations
func LoadFromDefaultPath() (*Config, error) {
	// Check in order: current dir, ~/.config/navmenu/, XDG_CONFIG_HOME
	paths := []string{
		"navmenu.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "navmenu", "config.yaml"),
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "navmenu", "config.yaml"))
	}

	for _, path := range paths {
		cleanPath := filepath.Clean(path)
		if _, err := os.Stat(cleanPath); err == nil { //nolint:gosec // config path from known locations
			return Load(cleanPath)
		}
	}

	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets LOG_LEVEL override the configured level.
func (c *Config) applyEnv() {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// HasMenuCommand reports whether the menu comes from a command.
func (c *Config) HasMenuCommand() bool {
	return len(c.MenuCommand) > 0
}

// global config instance
var globalConfig *Config

// Global returns the global config instance, loading it if necessary
func Global() *Config {
	if globalConfig == nil {
		cfg, err := LoadFromDefaultPath()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal sets the global config instance (useful for testing)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}
