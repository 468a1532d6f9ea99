package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Prefs are the small bits of UI state worth keeping between runs: the
// last tone the user picked and, in the authenticated build, their ID.
// Post data itself is never persisted; the service owns it.
type Prefs struct {
	Tone      string `json:"tone,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// PrefsStore persists Prefs as a JSON file under the workspace.
type PrefsStore struct {
	mu       sync.Mutex
	filePath string
	prefs    Prefs
}

// NewPrefsStore creates a store, loading from disk if available.
func NewPrefsStore(workspace string) *PrefsStore {
	stateDir := filepath.Join(workspace, "state")
	os.MkdirAll(stateDir, 0755)

	s := &PrefsStore{
		filePath: filepath.Join(stateDir, "prefs.json"),
	}
	s.load()
	return s
}

// Get returns the current prefs.
func (s *PrefsStore) Get() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Set replaces the prefs and writes them to disk atomically.
func (s *PrefsStore) Set(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	s.prefs = p
	return s.saveAtomic()
}

func (s *PrefsStore) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return
	}
	json.Unmarshal(data, &s.prefs)
}

func (s *PrefsStore) saveAtomic() error {
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, s.filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
