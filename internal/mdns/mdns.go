// Package mdns provides optional mDNS/Bonjour service advertisement.
//
// When enabled, the host advertises itself on the local network using
// DNS-SD, letting phones discover it without typing an IP address.
// This is opt-in: discovery reveals presence, and pairing codes are
// still required to control the host.
package mdns

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/grandcat/zeroconf"
)

// ServiceType is the mDNS service type for remote touchpad hosts.
// Follows the standard Bonjour naming convention: _<service>._<protocol>
const ServiceType = "_remotepad._tcp"

// ProtocolVersion identifies the advertised protocol version for
// compatibility checks.
const ProtocolVersion = "1"

// Config holds configuration for mDNS advertisement.
type Config struct {
	// Port is the server port to advertise (e.g., 5050).
	Port int

	// Name is a human-readable name for this host.
	// Defaults to the system hostname if empty.
	Name string
}

// Advertiser manages mDNS/DNS-SD service registration.
type Advertiser struct {
	config Config
	server *zeroconf.Server
	mu     sync.Mutex
}

// NewAdvertiser creates a new mDNS advertiser with the given configuration.
func NewAdvertiser(cfg Config) *Advertiser {
	return &Advertiser{
		config: cfg,
	}
}

// Start begins advertising the service via mDNS.
//
// Start is safe to call multiple times; subsequent calls are no-ops
// if already running.
func (a *Advertiser) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		return nil
	}

	name := a.config.Name
	if name == "" {
		hostname, err := os.Hostname()
		if err != nil {
			name = "remotepad"
		} else {
			name = hostname
		}
	}

	txtRecords := []string{
		fmt.Sprintf("version=%s", ProtocolVersion),
		fmt.Sprintf("name=%s", name),
	}

	server, err := zeroconf.Register(
		name,
		ServiceType,
		"local.",
		a.config.Port,
		txtRecords,
		nil, // all network interfaces
	)
	if err != nil {
		return fmt.Errorf("mdns register: %w", err)
	}

	a.server = server
	return nil
}

// Stop stops the mDNS advertisement and unregisters the service.
// Safe to call multiple times or on an advertiser that never started.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// IsRunning returns true if the advertiser is currently running.
func (a *Advertiser) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}

// DiscoveredHost represents a host found via mDNS discovery.
type DiscoveredHost struct {
	// Name is the human-readable name of the host.
	Name string

	// Host is the IP address or hostname.
	Host string

	// Port is the server port.
	Port int

	// Version is the advertised protocol version.
	Version string
}

// Discover searches for touchpad hosts on the local network until the
// context expires. This exists for diagnostics; phone browsers cannot
// do mDNS themselves, so discovery is a host-side tool.
func Discover(ctx context.Context) ([]DiscoveredHost, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("mdns resolver: %w", err)
	}

	var (
		hosts []DiscoveredHost
		mu    sync.Mutex
		wg    sync.WaitGroup
	)

	entries := make(chan *zeroconf.ServiceEntry)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for entry := range entries {
			host := DiscoveredHost{
				Name: entry.Instance,
				Port: entry.Port,
			}

			// Prefer IPv4: that is what the connect URL shows.
			if len(entry.AddrIPv4) > 0 {
				host.Host = entry.AddrIPv4[0].String()
			} else if len(entry.AddrIPv6) > 0 {
				host.Host = entry.AddrIPv6[0].String()
			}

			for _, txt := range entry.Text {
				switch {
				case strings.HasPrefix(txt, "version="):
					host.Version = strings.TrimPrefix(txt, "version=")
				case strings.HasPrefix(txt, "name="):
					host.Name = strings.TrimPrefix(txt, "name=")
				}
			}

			mu.Lock()
			hosts = append(hosts, host)
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, "local.", entries); err != nil {
		return nil, fmt.Errorf("mdns browse: %w", err)
	}

	// zeroconf closes the entries channel when the context is done.
	<-ctx.Done()
	wg.Wait()

	return hosts, nil
}
