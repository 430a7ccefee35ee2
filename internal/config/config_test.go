package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoad_AllFields verifies that all config fields are parsed correctly from TOML.
func TestLoad_AllFields(t *testing.T) {
	content := `
addr = "0.0.0.0:8080"
db_path = "/path/to/remotepad.db"
web_root = "/path/to/webapp"
mdns_enabled = true
mouse_sensitivity = 1.2
scroll_sensitivity = 0.5
log_file = "/var/log/remotepad.log"
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Addr != "0.0.0.0:8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, "0.0.0.0:8080")
	}
	if cfg.DBPath != "/path/to/remotepad.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/path/to/remotepad.db")
	}
	if cfg.WebRoot != "/path/to/webapp" {
		t.Errorf("WebRoot = %q, want %q", cfg.WebRoot, "/path/to/webapp")
	}
	if !cfg.MdnsEnabled {
		t.Error("MdnsEnabled = false, want true")
	}
	if cfg.MouseSensitivity != 1.2 {
		t.Errorf("MouseSensitivity = %v, want 1.2", cfg.MouseSensitivity)
	}
	if cfg.ScrollSensitivity != 0.5 {
		t.Errorf("ScrollSensitivity = %v, want 0.5", cfg.ScrollSensitivity)
	}
	if cfg.LogFile != "/var/log/remotepad.log" {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, "/var/log/remotepad.log")
	}
}

// TestLoad_PartialConfig verifies that a config with only some fields set
// leaves other fields at their zero values.
func TestLoad_PartialConfig(t *testing.T) {
	content := `addr = "192.168.1.10:6000"`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Addr != "192.168.1.10:6000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, "192.168.1.10:6000")
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
	if cfg.MdnsEnabled {
		t.Error("MdnsEnabled = true, want false")
	}
	if cfg.MouseSensitivity != 0 {
		t.Errorf("MouseSensitivity = %v, want 0", cfg.MouseSensitivity)
	}
}

// TestLoad_MissingExplicitFile verifies that specifying a nonexistent
// config file is an error.
func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

// TestLoad_InvalidTOML verifies parse errors are surfaced.
func TestLoad_InvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(tmpFile, []byte("addr = [not valid"), 0600); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	if _, err := Load(tmpFile); err == nil {
		t.Fatal("expected parse error for invalid TOML")
	}
}

// TestWriteDefault verifies default config creation behavior.
func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if !strings.Contains(string(data), DefaultAddr) {
		t.Errorf("written config missing default addr %q", DefaultAddr)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.MdnsEnabled {
		t.Error("default config must leave mdns disabled")
	}
}

// TestWriteDefault_DoesNotOverwrite verifies an existing file is preserved.
func TestWriteDefault_DoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	original := `addr = "10.0.0.1:9999"`
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(data) != original {
		t.Error("WriteDefault overwrote an existing config file")
	}
}
