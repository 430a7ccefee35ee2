package server

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
)

// createMux creates the HTTP mux with all endpoints.
func (s *Server) createMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Control channel endpoint.
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Health check endpoint for monitoring.
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Local management endpoints. These are for the CLI on the host
	// machine itself and refuse connections from the LAN: pairing codes
	// and settings changes must not be reachable from the devices they
	// gate.
	mux.HandleFunc("/pair/generate", s.handleGenerateCode)
	mux.HandleFunc("/api/settings", s.handleSettings)

	// Bundled web client at the root.
	if s.webRoot != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.webRoot)))
		log.Printf("server: serving web client from %s", s.webRoot)
	}

	return mux
}

// handleWebSocket upgrades an HTTP connection to a WebSocket control
// channel. Every connection gets a session keyed by the device's
// network address, and the client immediately learns its standing via
// an auth status message.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	addr := remoteHost(r)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade failed: %v", err)
		return
	}

	s.mu.RLock()
	stopped := s.stopped
	s.mu.RUnlock()
	if stopped {
		conn.Close()
		return
	}

	client := &Client{
		conn:      conn,
		send:      make(chan Message, sendBufferSize),
		done:      make(chan struct{}),
		server:    s,
		sessionID: s.sessions.Connect(addr),
		addr:      addr,
	}

	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()

	log.Printf("server: client connected from %s (%d total)", addr, s.ClientCount())

	go client.writePump()

	// Tell the client where it stands before any events flow.
	// A trusted device's page skips the pairing prompt entirely.
	client.queue(NewAuthStatusMessage(s.sessions.Authenticated(client.sessionID), ""))

	go client.readPump()
}

// handleGenerateCode issues a fresh pairing code.
// POST only, loopback only: the code is displayed on the host machine
// and typed into the phone, never fetched by the phone.
func (s *Server) handleGenerateCode(w http.ResponseWriter, r *http.Request) {
	if !isLoopback(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code, err := s.pairing.Start()
	if err != nil {
		log.Printf("server: failed to generate pairing code: %v", err)
		http.Error(w, "failed to generate code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"code": code})
}

// settingsResponse is the JSON shape of the settings API.
type settingsResponse struct {
	MouseSensitivity  float64 `json:"mouse_sensitivity"`
	ScrollSensitivity float64 `json:"scroll_sensitivity"`
	Resolution        struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"resolution"`
}

// settingsUpdate is a partial settings change. Omitted fields are left
// unchanged.
type settingsUpdate struct {
	MouseSensitivity  *float64 `json:"mouse_sensitivity"`
	ScrollSensitivity *float64 `json:"scroll_sensitivity"`
	Resolution        *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"resolution"`
}

// handleSettings reads or updates the scaling settings.
// Loopback only: settings belong to the person at the host machine.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if !isLoopback(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.writeSettings(w)

	case http.MethodPost:
		var upd settingsUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		if upd.MouseSensitivity != nil {
			if *upd.MouseSensitivity <= 0 {
				http.Error(w, "mouse_sensitivity must be positive", http.StatusBadRequest)
				return
			}
			s.settings.SetMouseSensitivity(*upd.MouseSensitivity)
		}
		if upd.ScrollSensitivity != nil {
			if *upd.ScrollSensitivity <= 0 {
				http.Error(w, "scroll_sensitivity must be positive", http.StatusBadRequest)
				return
			}
			s.settings.SetScrollSensitivity(*upd.ScrollSensitivity)
		}
		if upd.Resolution != nil {
			if upd.Resolution.Width <= 0 || upd.Resolution.Height <= 0 {
				http.Error(w, "resolution must be positive", http.StatusBadRequest)
				return
			}
			s.settings.SetResolution(upd.Resolution.Width, upd.Resolution.Height)
		}

		s.writeSettings(w)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// writeSettings writes the current settings as JSON.
func (s *Server) writeSettings(w http.ResponseWriter) {
	var resp settingsResponse
	resp.MouseSensitivity = s.settings.MouseSensitivity()
	resp.ScrollSensitivity = s.settings.ScrollSensitivity()
	resp.Resolution.Width, resp.Resolution.Height = s.settings.Resolution()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// remoteHost returns the host part of the request's remote address.
// Falls back to the raw value when it carries no port.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// isLoopback reports whether the request came from the host machine
// itself.
func isLoopback(r *http.Request) bool {
	ip := net.ParseIP(remoteHost(r))
	return ip != nil && ip.IsLoopback()
}
