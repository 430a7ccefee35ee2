package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skip2/go-qrcode"
)

// PairConfig holds configuration for the pair command.
type PairConfig struct {
	Addr string // Display address for the connect URL
	Port int    // Port of the running host
	QR   bool   // Display the connect URL as a QR code
}

func runPair(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pair", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &PairConfig{}
	fs.StringVar(&cfg.Addr, "addr", "", "Display address for the connect URL (default: Tailscale or LAN IP)")
	fs.IntVar(&cfg.Port, "port", 5050, "Port of the running host")
	fs.BoolVar(&cfg.QR, "qr", false, "Display the connect URL as a QR code")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: remotepad pair [options]\n\nGenerate a pairing code for a new device.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nThe code replaces any previous one and can only be used once.\n")
		fmt.Fprintf(stderr, "Enter it on the phone when the touchpad page asks for a PIN.\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	// Display address is for the human; code generation always goes to
	// localhost because the host restricts /pair/generate to loopback.
	displayAddr := cfg.Addr
	if displayAddr == "" {
		displayAddr = displayAddress(cfg.Port)
	}

	code, err := requestPairingCode(cfg.Port)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "\nThe host must be running to generate a pairing code.\n")
		fmt.Fprintf(stderr, "Start it with: remotepad start\n")
		return 1
	}

	DisplayPairingCode(stdout, code, displayAddr, cfg.QR)
	return 0
}

// requestPairingCode asks the running host for a fresh pairing code.
func requestPairingCode(port int) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	url := fmt.Sprintf("http://127.0.0.1:%d/pair/generate", port)
	resp, err := client.Post(url, "application/json", nil)
	if err != nil {
		return "", fmt.Errorf("could not connect to host on port %d: %w", port, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("pairing code generation is restricted to localhost")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("host returned status %d", resp.StatusCode)
	}

	var result struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.Code, nil
}

// DisplayPairingCode shows the pairing code and connect URL, optionally
// with a QR code of the URL for scanning.
func DisplayPairingCode(w io.Writer, code, addr string, withQR bool) {
	connectURL := fmt.Sprintf("http://%s", addr)

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "===========================================")
	fmt.Fprintln(w, "         PAIRING CODE")
	fmt.Fprintln(w, "===========================================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "           %s\n", FormatCodeWithSpaces(code))
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "  Open:    %s\n", connectURL)
	fmt.Fprintln(w, "")

	if withQR {
		if qr, err := qrcode.New(connectURL, qrcode.Medium); err == nil {
			fmt.Fprint(w, qr.ToSmallString(false))
			fmt.Fprintln(w, "")
		} else {
			fmt.Fprintf(w, "  (QR generation failed: %v)\n", err)
		}
	}

	fmt.Fprintln(w, "  Enter this code on the phone to pair.")
	fmt.Fprintln(w, "  The code can only be used once.")
	fmt.Fprintln(w, "===========================================")
	fmt.Fprintln(w, "")
}

// FormatCodeWithSpaces adds spaces between digits for readability.
// "1234" -> "1 2 3 4"
func FormatCodeWithSpaces(code string) string {
	result := ""
	for i, c := range code {
		if i > 0 {
			result += " "
		}
		result += string(c)
	}
	return result
}
