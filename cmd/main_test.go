package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/remotepad/host/internal/storage"
)

func runCapture(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"remotepad"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunNoArgsShowsUsage(t *testing.T) {
	code, stdout, _ := runCapture(t)
	if code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected usage output")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	code, stdout, _ := runCapture(t, "levitate")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout, "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCapture(t, "--version")
	if code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, Version) {
		t.Errorf("expected version %q in output %q", Version, stdout)
	}
}

func TestFormatCodeWithSpaces(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1234", "1 2 3 4"},
		{"7", "7"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatCodeWithSpaces(tt.in); got != tt.want {
			t.Errorf("FormatCodeWithSpaces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{72 * time.Hour, "3d ago"},
		{-time.Minute, "in the future"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestAddrPort(t *testing.T) {
	tests := []struct {
		addr string
		want int
	}{
		{"0.0.0.0:5050", 5050},
		{"127.0.0.1:8080", 8080},
		{"garbage", 5050},
		{"host:notaport", 5050},
	}
	for _, tt := range tests {
		if got := addrPort(tt.addr); got != tt.want {
			t.Errorf("addrPort(%q) = %d, want %d", tt.addr, got, tt.want)
		}
	}
}

func TestDevicesListEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")
	code, stdout, _ := runCapture(t, "devices", "list", "--db", dbPath)
	if code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "No trusted devices") {
		t.Errorf("expected empty message, got %q", stdout)
	}
}

func TestDevicesListAndRevoke(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "devices.db")

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	now := time.Now()
	if err := store.SaveTrustedDevice(&storage.TrustedDevice{
		Addr:     "192.168.1.42",
		AddedAt:  now,
		LastSeen: now,
	}); err != nil {
		t.Fatalf("failed to save device: %v", err)
	}
	store.Close()

	code, stdout, _ := runCapture(t, "devices", "list", "--db", dbPath)
	if code != 0 {
		t.Fatalf("list: expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "192.168.1.42") {
		t.Errorf("expected device address in listing, got %q", stdout)
	}

	code, stdout, _ = runCapture(t, "devices", "revoke", "--db", dbPath, "192.168.1.42")
	if code != 0 {
		t.Fatalf("revoke: expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "Revoked device: 192.168.1.42") {
		t.Errorf("expected revoke confirmation, got %q", stdout)
	}

	code, stdout, _ = runCapture(t, "devices", "list", "--db", dbPath)
	if code != 0 {
		t.Fatalf("list after revoke: expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "No trusted devices") {
		t.Errorf("expected empty listing after revoke, got %q", stdout)
	}
}

func TestDevicesRevokeUnknown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "devices.db")

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	store.Close()

	code, _, stderr := runCapture(t, "devices", "revoke", "--db", dbPath, "10.0.0.9")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "not found") {
		t.Errorf("expected not-found error, got %q", stderr)
	}
}

func TestDevicesRevokeRequiresAddress(t *testing.T) {
	code, _, stderr := runCapture(t, "devices", "revoke")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "address is required") {
		t.Errorf("expected missing-address error, got %q", stderr)
	}
}

func TestPairFailsWithoutHost(t *testing.T) {
	// Port 1 is never listening.
	code, _, stderr := runCapture(t, "pair", "--port", "1")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "The host must be running") {
		t.Errorf("expected host-not-running hint, got %q", stderr)
	}
}
