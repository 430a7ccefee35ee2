package auth

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// session is the authentication state of one live connection.
type session struct {
	// addr is the network address of the owning device.
	addr string

	// authenticated flips false→true only, never back, for the lifetime
	// of the connection.
	authenticated bool
}

// SessionRegistry tracks per-connection authentication state.
// A session is created on connect and destroyed on disconnect; there is no
// carry-over between connections. A reconnecting device must either be in
// the trust store or pair again.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	trust    *TrustStore
}

// NewSessionRegistry creates a registry gated by the given trust store.
func NewSessionRegistry(trust *TrustStore) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*session),
		trust:    trust,
	}
}

// Connect registers a new session for a device address and returns its ID.
// The session starts authenticated if the address is trusted at connect
// time. This is a snapshot: a later trust grant does not retroactively
// authenticate an already-open session unless Authenticate is called.
func (sr *SessionRegistry) Connect(addr string) string {
	id := uuid.New().String()
	trusted := sr.trust.IsTrusted(addr)

	sr.mu.Lock()
	sr.sessions[id] = &session{addr: addr, authenticated: trusted}
	sr.mu.Unlock()

	log.Printf("auth: session %s connected from %s (trusted: %v)", id, addr, trusted)
	return id
}

// Authenticate marks a session as authenticated.
// Called after a successful pairing-code submission for the session's
// device. Unknown session IDs are ignored.
func (sr *SessionRegistry) Authenticate(sessionID string) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if s, ok := sr.sessions[sessionID]; ok {
		s.authenticated = true
	}
}

// Authenticated reports whether a session may control the host.
// Unknown session IDs are never authenticated.
func (sr *SessionRegistry) Authenticated(sessionID string) bool {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	s, ok := sr.sessions[sessionID]
	return ok && s.authenticated
}

// Addr returns the device address that owns a session.
// Returns "" for unknown session IDs.
func (sr *SessionRegistry) Addr(sessionID string) string {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	if s, ok := sr.sessions[sessionID]; ok {
		return s.addr
	}
	return ""
}

// Disconnect removes a session. Prompt removal keeps the registry from
// growing without bound as devices come and go.
func (sr *SessionRegistry) Disconnect(sessionID string) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if _, ok := sr.sessions[sessionID]; ok {
		delete(sr.sessions, sessionID)
		log.Printf("auth: session %s disconnected", sessionID)
	}
}

// Count returns the number of live sessions.
func (sr *SessionRegistry) Count() int {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return len(sr.sessions)
}
