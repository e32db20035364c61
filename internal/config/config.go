// Package config provides application configuration management for ccmon.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the ccmon configuration.
type Config struct {
	ClaudeDir       string `toml:"claude_dir"`       // Session store root (empty = ~/.claude/projects)
	ExecName        string `toml:"exec_name"`        // Process name to scan for
	RefreshInterval string `toml:"refresh_interval"` // Poll period (e.g. "3s")
	LogFile         string `toml:"log_file"`         // Diagnostic log path (empty = disabled)
	Plain           bool   `toml:"plain"`            // Default to plain text output
}

// RefreshDuration returns the parsed refresh interval (default: 3s).
func (c Config) RefreshDuration() time.Duration {
	if c.RefreshInterval != "" {
		if d, err := time.ParseDuration(c.RefreshInterval); err == nil && d > 0 {
			return d
		}
	}
	return 3 * time.Second
}

// Dir returns the path to the .ccmon directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ccmon"), nil
}

// Path returns the path to the main config file.
func Path() (string, error) {
	configDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from ~/.ccmon/config.toml. On first run the
// defaults are written to disk so the file exists to edit.
func Load() (Config, error) {
	configPath, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(configPath)
}

// LoadFile loads the configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if saveErr := saveTo(path, cfg); saveErr != nil {
			return cfg, nil // defaults still usable if the write fails
		}
		return cfg, nil
	} else if err != nil {
		return Config{}, err
	}

	// Start from defaults so missing keys keep their defaults.
	config := Default()
	if err := toml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}

	if config.ExecName == "" {
		config.ExecName = "claude"
	}

	return config, nil
}

// Default returns a default configuration with all defaults set.
func Default() Config {
	return Config{
		ExecName:        "claude",
		RefreshInterval: "3s",
	}
}

// Save saves the configuration to ~/.ccmon/config.toml.
func Save(config Config) error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return saveTo(configPath, config)
}

func saveTo(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(config)
}
