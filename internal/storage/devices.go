package storage

// devices.go contains SQLiteStore methods for the trusted-device allow-list.
// A trusted device is identified by its network address; trusted addresses
// skip pairing on future connections.

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"
)

// TrustedDevice represents one entry in the trusted-device allow-list.
type TrustedDevice struct {
	Addr     string
	AddedAt  time.Time
	LastSeen time.Time
}

// SaveTrustedDevice persists a trusted device address.
// Uses INSERT OR REPLACE so re-trusting an address is idempotent.
func (s *SQLiteStore) SaveTrustedDevice(device *TrustedDevice) error {
	if device == nil {
		return errors.New("device cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("storage: saving trusted device %s", device.Addr)

	const query = `
		INSERT OR REPLACE INTO trusted_devices
			(addr, added_at, last_seen)
		VALUES (?, ?, ?)
	`

	_, err := s.db.Exec(query,
		device.Addr,
		device.AddedAt.Format(time.RFC3339Nano),
		device.LastSeen.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save trusted device: %w", err)
	}

	return nil
}

// GetTrustedDevice retrieves a trusted device by address.
// Returns nil, nil if the address is not trusted.
func (s *SQLiteStore) GetTrustedDevice(addr string) (*TrustedDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const query = `
		SELECT addr, added_at, last_seen
		FROM trusted_devices
		WHERE addr = ?
	`

	device, err := scanTrustedDevice(s.db.QueryRow(query, addr))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trusted device: %w", err)
	}

	return device, nil
}

// ListTrustedDevices returns all trusted devices, oldest first.
func (s *SQLiteStore) ListTrustedDevices() ([]*TrustedDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const query = `
		SELECT addr, added_at, last_seen
		FROM trusted_devices
		ORDER BY added_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query trusted devices: %w", err)
	}
	defer rows.Close()

	var devices []*TrustedDevice
	for rows.Next() {
		var (
			device  TrustedDevice
			addedAt string
			seen    string
		)
		if err := rows.Scan(&device.Addr, &addedAt, &seen); err != nil {
			return nil, fmt.Errorf("scan trusted device: %w", err)
		}
		if err := parseDeviceTimes(&device, addedAt, seen); err != nil {
			return nil, err
		}
		devices = append(devices, &device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trusted device rows: %w", err)
	}

	log.Printf("storage: listed %d trusted devices", len(devices))
	return devices, nil
}

// DeleteTrustedDevice removes an address from the allow-list.
// Returns nil if the address is not present (idempotent delete).
func (s *SQLiteStore) DeleteTrustedDevice(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("storage: deleting trusted device %s", addr)

	_, err := s.db.Exec("DELETE FROM trusted_devices WHERE addr = ?", addr)
	if err != nil {
		return fmt.Errorf("delete trusted device: %w", err)
	}

	return nil
}

// UpdateDeviceLastSeen updates the last_seen timestamp for an address.
// Returns ErrDeviceNotFound if the address is not trusted.
func (s *SQLiteStore) UpdateDeviceLastSeen(addr string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const query = `UPDATE trusted_devices SET last_seen = ? WHERE addr = ?`

	result, err := s.db.Exec(query, t.Format(time.RFC3339Nano), addr)
	if err != nil {
		return fmt.Errorf("update last_seen: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

// scanTrustedDevice scans a single row into a TrustedDevice.
func scanTrustedDevice(row *sql.Row) (*TrustedDevice, error) {
	var (
		device  TrustedDevice
		addedAt string
		seen    string
	)

	if err := row.Scan(&device.Addr, &addedAt, &seen); err != nil {
		return nil, err
	}
	if err := parseDeviceTimes(&device, addedAt, seen); err != nil {
		return nil, err
	}

	return &device, nil
}

// parseDeviceTimes parses the stored RFC3339 timestamps into the device.
func parseDeviceTimes(device *TrustedDevice, addedAt, lastSeen string) error {
	t, err := time.Parse(time.RFC3339Nano, addedAt)
	if err != nil {
		return fmt.Errorf("parse added_at: %w", err)
	}
	device.AddedAt = t

	t, err = time.Parse(time.RFC3339Nano, lastSeen)
	if err != nil {
		return fmt.Errorf("parse last_seen: %w", err)
	}
	device.LastSeen = t

	return nil
}
