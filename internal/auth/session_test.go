package auth

import (
	"testing"
)

func TestConnectUntrustedStartsUnauthenticated(t *testing.T) {
	sr := NewSessionRegistry(NewTrustStore(nil))

	id := sr.Connect("192.168.1.5")
	if id == "" {
		t.Fatal("expected non-empty session ID")
	}
	if sr.Authenticated(id) {
		t.Error("expected untrusted device to start unauthenticated")
	}
}

func TestConnectTrustedStartsAuthenticated(t *testing.T) {
	trust := NewTrustStore(nil)
	trust.Trust("192.168.1.5")
	sr := NewSessionRegistry(trust)

	id := sr.Connect("192.168.1.5")
	if !sr.Authenticated(id) {
		t.Error("expected trusted device to start authenticated")
	}
}

func TestAuthenticateFlipsSession(t *testing.T) {
	sr := NewSessionRegistry(NewTrustStore(nil))

	id := sr.Connect("192.168.1.5")
	sr.Authenticate(id)

	if !sr.Authenticated(id) {
		t.Error("expected session to be authenticated after Authenticate")
	}
}

func TestLateTrustDoesNotAuthenticateOpenSession(t *testing.T) {
	trust := NewTrustStore(nil)
	sr := NewSessionRegistry(trust)

	id := sr.Connect("192.168.1.5")
	trust.Trust("192.168.1.5")

	if sr.Authenticated(id) {
		t.Error("trust after connect must not retroactively authenticate the session")
	}

	// A fresh connection from the now-trusted address does start
	// authenticated.
	id2 := sr.Connect("192.168.1.5")
	if !sr.Authenticated(id2) {
		t.Error("expected new session from trusted address to be authenticated")
	}
}

func TestUnknownSessionNeverAuthenticated(t *testing.T) {
	sr := NewSessionRegistry(NewTrustStore(nil))

	if sr.Authenticated("no-such-session") {
		t.Error("unknown session must not be authenticated")
	}

	// Authenticate on an unknown ID is ignored, not created.
	sr.Authenticate("no-such-session")
	if sr.Authenticated("no-such-session") {
		t.Error("authenticating an unknown session must not create it")
	}
}

func TestDisconnectRemovesSession(t *testing.T) {
	sr := NewSessionRegistry(NewTrustStore(nil))

	id := sr.Connect("192.168.1.5")
	sr.Authenticate(id)
	sr.Disconnect(id)

	if sr.Authenticated(id) {
		t.Error("expected disconnected session to lose authentication")
	}
	if sr.Count() != 0 {
		t.Errorf("expected 0 sessions, got %d", sr.Count())
	}
}

func TestAddr(t *testing.T) {
	sr := NewSessionRegistry(NewTrustStore(nil))

	id := sr.Connect("192.168.1.5")
	if got := sr.Addr(id); got != "192.168.1.5" {
		t.Errorf("Addr = %q, want %q", got, "192.168.1.5")
	}
	if got := sr.Addr("no-such-session"); got != "" {
		t.Errorf("Addr for unknown session = %q, want empty", got)
	}
}

func TestSessionIDsUnique(t *testing.T) {
	sr := NewSessionRegistry(NewTrustStore(nil))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := sr.Connect("192.168.1.5")
		if seen[id] {
			t.Fatalf("duplicate session ID %q", id)
		}
		seen[id] = true
	}
}
