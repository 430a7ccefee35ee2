package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/skip2/go-qrcode"

	"github.com/remotepad/host/internal/auth"
	"github.com/remotepad/host/internal/config"
	"github.com/remotepad/host/internal/input"
	"github.com/remotepad/host/internal/mdns"
	"github.com/remotepad/host/internal/router"
	"github.com/remotepad/host/internal/server"
	"github.com/remotepad/host/internal/settings"
	"github.com/remotepad/host/internal/storage"
)

// StartConfig holds the effective configuration for the start command
// after merging flags over the config file.
type StartConfig struct {
	ConfigPath string
	Addr       string
	DBPath     string
	WebRoot    string
	Mdns       bool
	Pair       bool
	NoQR       bool
}

func runStart(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &StartConfig{}
	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to config file (default: ~/.remotepad/config.toml)")
	fs.StringVar(&cfg.Addr, "addr", "", "Listen address (default: "+config.DefaultAddr+")")
	fs.StringVar(&cfg.DBPath, "db", "", "Path to the device database (default: ~/.remotepad/remotepad.db)")
	fs.StringVar(&cfg.WebRoot, "web-root", "", "Directory with the web client (default: "+config.DefaultWebRoot+")")
	fs.BoolVar(&cfg.Mdns, "mdns", false, "Advertise the host via mDNS")
	fs.BoolVar(&cfg.Pair, "pair", false, "Generate and display a pairing code at startup")
	fs.BoolVar(&cfg.NoQR, "no-qr", false, "Skip the QR code in the startup banner")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: remotepad start [options]\n\nStart the host and serve the web touchpad.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	fileCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Flags take precedence over file values, file values over defaults.
	addr := cfg.Addr
	if addr == "" {
		addr = fileCfg.Addr
	}
	if addr == "" {
		addr = config.DefaultAddr
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = fileCfg.DBPath
	}
	if dbPath == "" {
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	webRoot := cfg.WebRoot
	if webRoot == "" {
		webRoot = fileCfg.WebRoot
	}
	if webRoot == "" {
		webRoot = config.DefaultWebRoot
	}

	mdnsEnabled := cfg.Mdns || fileCfg.MdnsEnabled

	if fileCfg.LogFile != "" {
		f, err := os.OpenFile(fileCfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}

	// Storage failures degrade to memory-only operation: the touchpad
	// still works, trust and settings just do not survive a restart.
	var store *storage.SQLiteStore
	if store, err = storage.NewSQLiteStore(dbPath); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to open device database, running without persistence: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	var deviceStore auth.DeviceStore
	var settingStore settings.SettingStore
	if store != nil {
		deviceStore = store
		settingStore = store
	}

	trust := auth.NewTrustStore(deviceStore)
	sessions := auth.NewSessionRegistry(trust)
	pairing := auth.NewPairingAuthority()

	set := settings.New(settingStore)
	if fileCfg.MouseSensitivity > 0 {
		set.SetMouseSensitivity(fileCfg.MouseSensitivity)
	}
	if fileCfg.ScrollSensitivity > 0 {
		set.SetScrollSensitivity(fileCfg.ScrollSensitivity)
	}

	rtr := router.New(sessions, set, input.NewRobotgoSink())
	srv := server.NewServer(addr, webRoot, sessions, trust, pairing, rtr, set)

	if err := <-srv.StartAsync(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer srv.Stop()

	if mdnsEnabled {
		adv := mdns.NewAdvertiser(mdns.Config{Port: addrPort(addr)})
		if err := adv.Start(); err != nil {
			fmt.Fprintf(stderr, "Warning: mDNS advertisement failed: %v\n", err)
		} else {
			defer adv.Stop()
		}
	}

	printBanner(stdout, addr, !cfg.NoQR, trust)

	if cfg.Pair {
		code, err := pairing.Start()
		if err != nil {
			fmt.Fprintf(stderr, "Warning: failed to generate pairing code: %v\n", err)
		} else {
			fmt.Fprintf(stdout, "  Pairing code: %s\n\n", FormatCodeWithSpaces(code))
		}
	}

	// Block until interrupted.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	fmt.Fprintf(stdout, "\nReceived %s, shutting down.\n", sig)

	return 0
}

// printBanner shows the connect URL, optionally as a QR code, and a
// pairing hint when no device is trusted yet.
func printBanner(w io.Writer, addr string, withQR bool, trust *auth.TrustStore) {
	connectURL := fmt.Sprintf("http://%s", displayAddress(addrPort(addr)))

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "remotepad is running.")
	fmt.Fprintf(w, "  Open on your phone: %s\n", connectURL)
	fmt.Fprintln(w, "")

	if withQR {
		if qr, err := qrcode.New(connectURL, qrcode.Medium); err == nil {
			fmt.Fprint(w, qr.ToSmallString(false))
			fmt.Fprintln(w, "")
		}
	}

	if trust.Count() == 0 {
		fmt.Fprintln(w, "  No trusted devices yet. Run 'remotepad pair' to get a pairing code.")
		fmt.Fprintln(w, "")
	}
}

// addrPort extracts the port from a listen address, defaulting to 5050.
func addrPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 5050
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 5050
	}
	return port
}
