package auth

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"sync"
)

// Pairing code bounds. Codes are 4-digit so a person can read one off the
// host screen and type it on a phone without error.
const (
	pinMin = 1000
	pinMax = 9999
)

// PairingAuthority owns the single active pairing code.
// At most one code exists system-wide at any time; starting a new pairing
// silently discards a previous unconsumed code.
//
// There is intentionally no expiry and no rate limiting on submissions: a
// mistyped code must not lock the user out mid-pairing. The code is only
// invalidated by a correct submission or by starting a new pairing.
type PairingAuthority struct {
	mu sync.Mutex

	// activeCode is the current pending code, or "" when none is active.
	activeCode string
}

// NewPairingAuthority creates a pairing authority with no active code.
func NewPairingAuthority() *PairingAuthority {
	return &PairingAuthority{}
}

// Start generates a fresh 4-digit pairing code and returns it for display.
// Any previously active code is replaced without side effects.
func (pa *PairingAuthority) Start() (string, error) {
	code, err := generatePin()
	if err != nil {
		return "", fmt.Errorf("generate pairing code: %w", err)
	}

	pa.mu.Lock()
	pa.activeCode = code
	pa.mu.Unlock()

	log.Printf("auth: generated pairing code")
	return code, nil
}

// Submit compares a code against the single active code.
// On match it returns true and clears the active code (one-time use).
// On mismatch it returns false and leaves the active code usable, so an
// accidental typo does not force the operator to start over.
// With no active code it always returns false.
func (pa *PairingAuthority) Submit(code string) bool {
	pa.mu.Lock()
	defer pa.mu.Unlock()

	if pa.activeCode == "" {
		log.Printf("auth: pairing attempt with no active code")
		return false
	}

	if code != pa.activeCode {
		log.Printf("auth: pairing attempt with incorrect code")
		return false
	}

	// Consumed exactly once, on the first correct submission.
	pa.activeCode = ""
	return true
}

// HasActiveCode reports whether an unconsumed code is pending.
func (pa *PairingAuthority) HasActiveCode() bool {
	pa.mu.Lock()
	defer pa.mu.Unlock()
	return pa.activeCode != ""
}

// generatePin returns a uniformly random code in [1000, 9999].
// Uses crypto/rand so codes are unpredictable.
func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinMax-pinMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", pinMin+n.Int64()), nil
}
