// Package config provides TOML configuration file loading for the host.
// The configuration file lives at ~/.remotepad/config.toml by default, but
// can be overridden with the --config flag. CLI flags always take
// precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the host configuration file structure.
// Field names map to snake_case in TOML files via struct tags.
type Config struct {
	// Addr is the host:port for the control-channel server.
	// Default: 0.0.0.0:5050 (all interfaces, so phones on the LAN can
	// reach it).
	Addr string `toml:"addr"`

	// DBPath is the path to the SQLite database for trusted devices
	// and settings. Default: ~/.remotepad/remotepad.db
	DBPath string `toml:"db_path"`

	// WebRoot is the directory holding the bundled web client.
	// Empty serves the webapp directory next to the working directory.
	WebRoot string `toml:"web_root"`

	// MdnsEnabled enables mDNS/Bonjour service advertisement.
	// When true, the host advertises itself on the local network.
	// Discovery only reveals presence; pairing codes are still required.
	// Default: false (disabled until explicitly enabled)
	MdnsEnabled bool `toml:"mdns_enabled"`

	// MouseSensitivity is the initial mouse sensitivity factor.
	// Zero means use the built-in default. Values saved through the
	// settings API override this on later runs.
	MouseSensitivity float64 `toml:"mouse_sensitivity"`

	// ScrollSensitivity is the initial scroll sensitivity factor.
	// Zero means use the built-in default.
	ScrollSensitivity float64 `toml:"scroll_sensitivity"`

	// LogFile is the path for log output. Empty logs to stderr.
	LogFile string `toml:"log_file"`
}

// DefaultConfigPath returns the default config file location:
// ~/.remotepad/config.toml. Returns an error only if the user's home
// directory cannot be determined.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".remotepad", "config.toml"), nil
}

// DefaultDBPath returns the default database location:
// ~/.remotepad/remotepad.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".remotepad", "remotepad.db"), nil
}

// WriteDefault creates a config file with LAN-ready defaults at the
// given path.
//
// Behavior:
//   - If the file already exists, returns without error (does not overwrite).
//   - Creates the parent directory if it doesn't exist.
//   - Returns an error if the file cannot be written.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`# Remotepad configuration
# Created by 'remotepad start'

# Listen on all interfaces so phones on the LAN can connect
addr = %q

# Advertise the host via mDNS (off until you opt in)
mdns_enabled = false
`, DefaultAddr)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads a TOML config file from the given path.
//
// Behavior:
//   - If path is empty, attempts to load from the default location.
//     Returns an empty Config without error if the default file doesn't exist.
//   - If path is specified, returns an error if the file doesn't exist.
//   - Returns an error if the file exists but cannot be parsed.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
			return cfg, nil
		}
		path = defaultPath
	} else {
		// Explicit path provided: error if the file doesn't exist, since
		// the user expects it to be applied.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
