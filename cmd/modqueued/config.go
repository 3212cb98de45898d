package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roasbeef/modqueue/internal/build"
	"gopkg.in/yaml.v3"
)

// Config holds the daemon configuration. Values can come from a YAML
// config file, with command line flags taking precedence.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string `yaml:"db_path"`

	// WebAddr is the listen address for the HTTP server. Empty
	// disables the web server.
	WebAddr string `yaml:"web_addr"`

	// LogDir is the directory for rotated log files. Empty disables
	// file logging (console only).
	LogDir string `yaml:"log_dir"`

	// MaxLogFiles is the maximum number of rotated log files to keep.
	MaxLogFiles int `yaml:"max_log_files"`

	// MaxLogFileSize is the maximum log file size in MB before
	// rotation.
	MaxLogFileSize int `yaml:"max_log_file_size"`

	// WebOnly disables the MCP stdio transport, running only the web
	// server.
	WebOnly bool `yaml:"web_only"`
}

// DefaultConfig returns the daemon configuration defaults. DBPath is left
// empty and resolved to the default location at startup.
func DefaultConfig() *Config {
	return &Config{
		WebAddr:        ":8080",
		MaxLogFiles:    build.DefaultMaxLogFiles,
		MaxLogFileSize: build.DefaultMaxLogFileSize,
	}
}

// LoadConfig reads a YAML config file into the defaults. A missing file
// is not an error when the path is the default location.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// expandHome expands a leading ~ in the given path to the user's home
// directory. Returns the path unchanged on failure.
func expandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
