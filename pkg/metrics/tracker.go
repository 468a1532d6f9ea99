package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event records one user-initiated operation and its outcome.
type Event struct {
	Timestamp  string `json:"ts"`
	Op         string `json:"op"`      // submit_text, submit_image, list_posts, download, voice_toggle, copy
	Outcome    string `json:"outcome"` // success, degraded, rejected
	DurationMS int64  `json:"ms"`
	Tone       string `json:"tone,omitempty"`
}

// Tracker appends operation events to a JSONL file. Recording is
// best-effort: a tracker failure never fails the operation it observes.
type Tracker struct {
	filePath string
	mu       sync.Mutex
}

// NewTracker creates a tracker that writes to workspace/metrics/events.jsonl.
func NewTracker(workspace string) *Tracker {
	dir := filepath.Join(workspace, "metrics")
	os.MkdirAll(dir, 0755)
	return &Tracker{
		filePath: filepath.Join(dir, "events.jsonl"),
	}
}

// Record appends an event to the JSONL file.
func (t *Tracker) Record(event Event) {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().Format(time.RFC3339)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	f.Write(data)
	f.Write([]byte("\n"))
}

// Observe wraps Record with a start time, for deferred use.
func (t *Tracker) Observe(op, tone string, start time.Time) func(outcome string) {
	return func(outcome string) {
		t.Record(Event{
			Op:         op,
			Outcome:    outcome,
			DurationMS: time.Since(start).Milliseconds(),
			Tone:       tone,
		})
	}
}
