// Package settings holds the process-wide pointer scaling configuration.
// The settings panel (or the localhost settings API) writes it; the input
// router reads it on every relevant event. Writers are rare and human
// triggered, so a plain RWMutex with last-writer-wins semantics is enough.
package settings

import (
	"fmt"
	"log"
	"strconv"
	"sync"
)

// Defaults match the original desktop application's slider positions.
const (
	DefaultMouseSensitivity  = 0.8
	DefaultScrollSensitivity = 1.0
	DefaultResolutionWidth   = 1920
	DefaultResolutionHeight  = 1080
)

// Setting keys for the persistence layer.
const (
	keyMouseSensitivity  = "mouse_sensitivity"
	keyScrollSensitivity = "scroll_sensitivity"
	keyResolution        = "resolution"
)

// SettingStore persists individual settings as strings.
// Implemented by storage.SQLiteStore. May be nil (memory-only).
type SettingStore interface {
	SaveSetting(key, value string) error
	GetSetting(key string) (string, bool, error)
}

// Settings is the shared scaling configuration.
// Monitor resolution is advisory metadata only: nothing in the routing math
// consumes it today, it is carried for forward compatibility.
type Settings struct {
	mu sync.RWMutex

	mouseSensitivity  float64
	scrollSensitivity float64
	resolutionWidth   int
	resolutionHeight  int

	store SettingStore
}

// New creates settings at their defaults, then overlays any values the
// store has from a previous run. Load errors are logged and ignored;
// defaults are always usable.
func New(store SettingStore) *Settings {
	s := &Settings{
		mouseSensitivity:  DefaultMouseSensitivity,
		scrollSensitivity: DefaultScrollSensitivity,
		resolutionWidth:   DefaultResolutionWidth,
		resolutionHeight:  DefaultResolutionHeight,
		store:             store,
	}
	s.load()
	return s
}

// MouseSensitivity returns the current mouse sensitivity factor.
func (s *Settings) MouseSensitivity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseSensitivity
}

// ScrollSensitivity returns the current scroll sensitivity factor.
func (s *Settings) ScrollSensitivity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrollSensitivity
}

// Resolution returns the advisory monitor resolution.
func (s *Settings) Resolution() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolutionWidth, s.resolutionHeight
}

// SetMouseSensitivity updates the mouse sensitivity factor.
func (s *Settings) SetMouseSensitivity(v float64) {
	s.mu.Lock()
	s.mouseSensitivity = v
	s.mu.Unlock()
	s.persist(keyMouseSensitivity, strconv.FormatFloat(v, 'g', -1, 64))
}

// SetScrollSensitivity updates the scroll sensitivity factor.
func (s *Settings) SetScrollSensitivity(v float64) {
	s.mu.Lock()
	s.scrollSensitivity = v
	s.mu.Unlock()
	s.persist(keyScrollSensitivity, strconv.FormatFloat(v, 'g', -1, 64))
}

// SetResolution updates the advisory monitor resolution.
func (s *Settings) SetResolution(width, height int) {
	s.mu.Lock()
	s.resolutionWidth = width
	s.resolutionHeight = height
	s.mu.Unlock()
	s.persist(keyResolution, fmt.Sprintf("%dx%d", width, height))
}

// persist writes one setting through to storage.
// Write failures are logged, not surfaced: the in-memory value is
// authoritative for the running process.
func (s *Settings) persist(key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveSetting(key, value); err != nil {
		log.Printf("settings: failed to persist %s: %v", key, err)
	}
}

// load overlays stored values on top of the defaults.
func (s *Settings) load() {
	if s.store == nil {
		return
	}

	if raw, ok, err := s.store.GetSetting(keyMouseSensitivity); err != nil {
		log.Printf("settings: failed to load %s: %v", keyMouseSensitivity, err)
	} else if ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			s.mouseSensitivity = v
		}
	}

	if raw, ok, err := s.store.GetSetting(keyScrollSensitivity); err != nil {
		log.Printf("settings: failed to load %s: %v", keyScrollSensitivity, err)
	} else if ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			s.scrollSensitivity = v
		}
	}

	if raw, ok, err := s.store.GetSetting(keyResolution); err != nil {
		log.Printf("settings: failed to load %s: %v", keyResolution, err)
	} else if ok {
		var w, h int
		if _, err := fmt.Sscanf(raw, "%dx%d", &w, &h); err == nil && w > 0 && h > 0 {
			s.resolutionWidth, s.resolutionHeight = w, h
		}
	}
}
