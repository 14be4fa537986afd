package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const tuningItem = "tuning"

// Store persists the local player's tuning between sessions.
type Store struct {
	m *gdata.Manager
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{m: m}, nil
}

// Load returns the saved tuning, or ok=false when nothing usable is stored.
func (s *Store) Load() (Tuning, bool) {
	if s == nil || s.m == nil {
		return Tuning{}, false
	}
	data, err := s.m.LoadItem(tuningItem)
	if err != nil {
		log.Printf("[config] could not load saved tuning: %v", err)
		return Tuning{}, false
	}
	if data == nil {
		return Tuning{}, false
	}
	t, err := Parse(data)
	if err != nil {
		log.Printf("[config] ignoring saved tuning: %v", err)
		return Tuning{}, false
	}
	return t, true
}

// Save writes t to disk.
func (s *Store) Save(t Tuning) error {
	if s == nil || s.m == nil {
		return nil
	}
	data, err := t.Marshal()
	if err != nil {
		return fmt.Errorf("encode tuning: %w", err)
	}
	if err := s.m.SaveItem(tuningItem, data); err != nil {
		return fmt.Errorf("save tuning: %w", err)
	}
	return nil
}
