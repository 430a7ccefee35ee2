package auth

import (
	"log"
	"sync"
	"time"

	"github.com/remotepad/host/internal/storage"
)

// DeviceStore defines the persistence interface for the trust store.
// This interface is implemented by storage.SQLiteStore.
// Implementations must be safe for concurrent access.
type DeviceStore interface {
	// SaveTrustedDevice persists a trusted device address (idempotent).
	SaveTrustedDevice(device *storage.TrustedDevice) error

	// ListTrustedDevices returns all trusted devices.
	ListTrustedDevices() ([]*storage.TrustedDevice, error)

	// UpdateDeviceLastSeen updates the last_seen timestamp for an address.
	UpdateDeviceLastSeen(addr string, t time.Time) error
}

// TrustStore is the durable allow-list of device network addresses.
// The in-memory set is authoritative for the running process: a persistence
// failure is logged but never revokes a grant already made, so a device that
// paired successfully is not locked out mid-session by a disk problem.
//
// The set never shrinks automatically. Removal is an explicit operator
// action (`remotepad devices revoke`), performed against storage directly.
type TrustStore struct {
	mu    sync.RWMutex
	addrs map[string]bool

	// store is the persistence backend. May be nil (memory-only mode,
	// used in tests and when the database failed to open).
	store DeviceStore

	timeNow func() time.Time
}

// NewTrustStore creates a trust store backed by the given persistence layer.
// Pass nil for a memory-only store.
//
// The persisted set is loaded once, here. A load failure degrades to an
// empty trust set rather than failing startup: every previously trusted
// device then simply has to re-pair.
func NewTrustStore(store DeviceStore) *TrustStore {
	ts := &TrustStore{
		addrs:   make(map[string]bool),
		store:   store,
		timeNow: time.Now,
	}

	if store != nil {
		devices, err := store.ListTrustedDevices()
		if err != nil {
			log.Printf("auth: failed to load trusted devices, starting with empty trust set: %v", err)
		} else {
			for _, d := range devices {
				ts.addrs[d.Addr] = true
			}
			log.Printf("auth: loaded %d trusted devices", len(devices))
		}
	}

	return ts
}

// IsTrusted reports whether the address is in the allow-list.
// Pure lookup, no side effects.
func (ts *TrustStore) IsTrusted(addr string) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.addrs[addr]
}

// Trust adds an address to the allow-list and persists the grant.
// Idempotent: trusting an already-trusted address is a no-op apart from a
// last_seen refresh. Persistence errors are logged, not returned; the
// in-memory grant holds for the remainder of the process either way.
func (ts *TrustStore) Trust(addr string) {
	ts.mu.Lock()
	already := ts.addrs[addr]
	ts.addrs[addr] = true
	ts.mu.Unlock()

	if ts.store == nil {
		return
	}

	now := ts.timeNow()
	if already {
		if err := ts.store.UpdateDeviceLastSeen(addr, now); err != nil {
			log.Printf("auth: failed to update last_seen for %s: %v", addr, err)
		}
		return
	}

	err := ts.store.SaveTrustedDevice(&storage.TrustedDevice{
		Addr:     addr,
		AddedAt:  now,
		LastSeen: now,
	})
	if err != nil {
		log.Printf("auth: failed to persist trust for %s (grant still holds in memory): %v", addr, err)
		return
	}

	log.Printf("auth: device trusted: %s", addr)
}

// Count returns the number of trusted addresses.
// Used by the startup banner to decide whether to prompt for first-time pairing.
func (ts *TrustStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.addrs)
}
