package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
)

// GetPreferredOutboundIP returns the machine's preferred outbound IPv4
// address. It works by dialing a UDP connection to a public IP (no
// actual traffic is sent) and checking which local address the OS
// routing table selected. Returns empty string if detection fails.
func GetPreferredOutboundIP() string {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String()
}

// tailscaleNet is the CGNAT range used by Tailscale (100.64.0.0/10).
var tailscaleNet = &net.IPNet{
	IP:   net.IPv4(100, 64, 0, 0),
	Mask: net.CIDRMask(10, 32),
}

// GetTailscaleIP scans network interfaces for a Tailscale IP address.
// A Tailscale address lets a phone connect even off the local network.
// Returns empty string if no Tailscale IP is found.
func GetTailscaleIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}

			ip := ipNet.IP.To4()
			if ip != nil && tailscaleNet.Contains(ip) {
				return ip.String()
			}
		}
	}

	return ""
}

// displayAddress picks the address to show in connect URLs.
// Priority: Tailscale IP > LAN IP > localhost.
func displayAddress(port int) string {
	if ip := GetTailscaleIP(); ip != "" {
		return fmt.Sprintf("%s:%d", ip, port)
	}
	if ip := GetPreferredOutboundIP(); ip != "" {
		return fmt.Sprintf("%s:%d", ip, port)
	}
	return fmt.Sprintf("127.0.0.1:%d", port)
}

func runAddress(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("address", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var port int
	fs.IntVar(&port, "port", 5050, "Port to include in the connect URL")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: remotepad address [options]\n\nShow the address phones should connect to.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	addr := displayAddress(port)
	if addr == fmt.Sprintf("127.0.0.1:%d", port) {
		fmt.Fprintln(stderr, "Warning: could not detect a network IP; phones on the LAN cannot reach localhost")
	}
	fmt.Fprintf(stdout, "http://%s\n", addr)
	return 0
}
