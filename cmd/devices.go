package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/remotepad/host/internal/config"
	"github.com/remotepad/host/internal/storage"
)

// DevicesConfig holds the configuration for device management commands.
type DevicesConfig struct {
	DBPath string
}

// formatDuration formats a duration in a human-readable way.
// Examples: "just now", "5m ago", "2h ago", "3d ago"
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "in the future"
	}
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

// resolveDBPath returns the database path from the flag or the default.
func resolveDBPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultDBPath()
}

func runDevicesList(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("devices list", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &DevicesConfig{}
	fs.StringVar(&cfg.DBPath, "db", "", "Path to the device database (default: ~/.remotepad/remotepad.db)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: remotepad devices list [options]\n\nList all trusted devices.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	dbPath, err := resolveDBPath(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(stdout, "No trusted devices found.")
		return 0
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open storage: %v\n", err)
		return 1
	}
	defer store.Close()

	devices, err := store.ListTrustedDevices()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to list devices: %v\n", err)
		return 1
	}

	if len(devices) == 0 {
		fmt.Fprintln(stdout, "No trusted devices found.")
		return 0
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tADDED\tLAST SEEN")
	fmt.Fprintln(w, "-------\t-----\t---------")

	now := time.Now()
	for _, device := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			device.Addr,
			formatDuration(now.Sub(device.AddedAt)),
			formatDuration(now.Sub(device.LastSeen)),
		)
	}
	w.Flush()

	return 0
}

func runDevicesRevoke(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("devices revoke", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &DevicesConfig{}
	fs.StringVar(&cfg.DBPath, "db", "", "Path to the device database (default: ~/.remotepad/remotepad.db)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: remotepad devices revoke [options] <address>\n\nRemove a device from the trust list.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: address is required")
		fs.Usage()
		return 1
	}
	addr := fs.Arg(0)

	dbPath, err := resolveDBPath(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(stderr, "Error: device %s not found\n", addr)
		return 1
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open storage: %v\n", err)
		return 1
	}
	defer store.Close()

	device, err := store.GetTrustedDevice(addr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to look up device: %v\n", err)
		return 1
	}
	if device == nil {
		fmt.Fprintf(stderr, "Error: device %s not found\n", addr)
		return 1
	}

	if err := store.DeleteTrustedDevice(addr); err != nil {
		fmt.Fprintf(stderr, "Error: failed to revoke device: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Revoked device: %s\n", addr)
	fmt.Fprintln(stdout, "Note: a running host keeps its in-memory trust until restart; restart it to disconnect the device now.")

	return 0
}
