package server

import (
	"net/http"
	"sync"

	// gorilla/websocket provides a complete implementation of the
	// WebSocket protocol with ping/pong and close handling.
	"github.com/gorilla/websocket"
)

// sendBufferSize is the buffer size for per-client send channels.
// Server-to-client traffic is only auth status replies, so a small
// buffer is plenty; it exists to keep handlers from blocking on a
// momentarily slow socket.
const sendBufferSize = 16

// Auth status messages shown on the client.
const (
	statusDeviceTrusted = "Device trusted!"
	statusInvalidPin    = "Invalid PIN"
)

// EventRouter receives gated input events decoded off the wire.
// Implemented by router.Router.
type EventRouter interface {
	Move(sessionID string, dx, dy float64)
	Click(sessionID string)
	RightClick(sessionID string)
	MouseDown(sessionID string)
	MouseUp(sessionID string)
	Scroll(sessionID string, dy float64)
	Type(sessionID, text string)
}

// Pairer issues and verifies one-time pairing codes.
// Implemented by auth.PairingAuthority.
type Pairer interface {
	// Start issues a fresh code, replacing any previous one.
	Start() (string, error)

	// Submit verifies a code, consuming it on success.
	Submit(code string) bool
}

// SessionTracker manages per-connection authentication state.
// Implemented by auth.SessionRegistry.
type SessionTracker interface {
	Connect(addr string) string
	Authenticate(sessionID string)
	Authenticated(sessionID string) bool
	Disconnect(sessionID string)
}

// Truster records a device address as trusted after successful pairing.
// Implemented by auth.TrustStore.
type Truster interface {
	Trust(addr string)
}

// SettingsAccessor exposes the scaling settings for the localhost
// settings API. Implemented by settings.Settings.
type SettingsAccessor interface {
	MouseSensitivity() float64
	ScrollSensitivity() float64
	Resolution() (width, height int)
	SetMouseSensitivity(v float64)
	SetScrollSensitivity(v float64)
	SetResolution(width, height int)
}

// Server accepts control-channel connections from remote touchpad
// clients and serves the bundled web client.
type Server struct {
	// addr is the address to listen on (e.g., "0.0.0.0:5050").
	addr string

	// webRoot is the directory holding the bundled web client.
	// Empty disables static file serving.
	webRoot string

	// upgrader converts HTTP connections to WebSocket connections.
	// Origin checks are disabled: the client is a phone browser on the
	// LAN, and its Origin header is the host's own address anyway.
	upgrader websocket.Upgrader

	// clients tracks all connected WebSocket clients.
	clients map[*Client]bool

	// mu protects the clients map and stopped flag.
	mu sync.RWMutex

	// stopped indicates whether the server has been stopped.
	stopped bool

	// httpServer is the underlying HTTP server for shutdown.
	httpServer *http.Server

	sessions SessionTracker
	trust    Truster
	pairing  Pairer
	router   EventRouter
	settings SettingsAccessor
}

// Client represents a single WebSocket connection.
// Each client has its own write goroutine so a slow socket never
// blocks event handling, and a single read goroutine that dispatches
// events synchronously to preserve their arrival order.
type Client struct {
	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// send is a buffered channel for outgoing messages.
	send chan Message

	// done is closed to signal the client should shut down.
	done chan struct{}

	// closeOnce ensures done is only closed once. Both Stop() and
	// readPump() may signal shutdown.
	closeOnce sync.Once

	// server is a reference back to the parent server.
	server *Server

	// sessionID is this connection's entry in the session registry.
	sessionID string

	// addr is the device's network address (host part, no port).
	addr string
}

// NewServer creates a control-channel server.
// Call Start or StartAsync to begin accepting connections.
func NewServer(addr, webRoot string, sessions SessionTracker, trust Truster, pairing Pairer, router EventRouter, settings SettingsAccessor) *Server {
	return &Server{
		addr:    addr,
		webRoot: webRoot,
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: sessions,
		trust:    trust,
		pairing:  pairing,
		router:   router,
		settings: settings,
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
