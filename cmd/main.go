package main

import (
	"fmt"
	"io"
	"os"
)

// Version is set at build time via -ldflags.
// Example: go build -ldflags="-X main.Version=v0.1.0" ./cmd
var Version = "dev"

const usage = `remotepad - turn a phone browser into a touchpad for this machine

Usage:
  remotepad <command> [options]

Commands:
  start         Start the host and serve the web touchpad
  pair          Generate a pairing code for a new device
  devices list  List trusted devices
  devices revoke <address>  Remove a device from the trust list
  address       Show the LAN address phones should connect to

Run 'remotepad <command> --help' for more information on a command.
`

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		fmt.Fprint(stdout, usage)
		return 0
	}

	switch args[1] {
	case "start":
		return runStart(args[2:], stdout, stderr)
	case "pair":
		return runPair(args[2:], stdout, stderr)
	case "devices":
		if len(args) < 3 {
			fmt.Fprintln(stdout, "Usage: remotepad devices <list|revoke>")
			return 1
		}
		switch args[2] {
		case "list":
			return runDevicesList(args[3:], stdout, stderr)
		case "revoke":
			return runDevicesRevoke(args[3:], stdout, stderr)
		default:
			fmt.Fprintf(stdout, "Unknown devices command: %s\n", args[2])
			return 1
		}
	case "address":
		return runAddress(args[2:], stdout, stderr)
	case "--help", "-h", "help":
		fmt.Fprint(stdout, usage)
		return 0
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "remotepad %s\n", Version)
		return 0
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n", args[1])
		fmt.Fprint(stdout, usage)
		return 1
	}
}
