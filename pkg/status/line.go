package status

import (
	"sync"
	"time"
)

// ReadyText is the idle status-bar message.
const ReadyText = "System Ready"

// Line projects the process-wide status string into the UI at a throttled
// interval. Writes overwrite each other with no queue: a second operation
// started before the first settles simply takes over the visible status,
// which is acceptable lost-update behavior for a single-user UI.
type Line struct {
	mu       sync.Mutex
	text     string
	onUpdate func(text string)
	ticker   *time.Ticker
	done     chan struct{}
	dirty    bool
	reset    *time.Timer
	closed   bool
}

// NewLine creates a status line that calls onUpdate with the current text
// at most once per interval.
func NewLine(interval time.Duration, onUpdate func(text string)) *Line {
	l := &Line{
		text:     ReadyText,
		onUpdate: onUpdate,
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
	}

	go l.loop()
	return l
}

func (l *Line) loop() {
	for {
		select {
		case <-l.ticker.C:
			l.flush()
		case <-l.done:
			return
		}
	}
}

func (l *Line) flush() {
	l.mu.Lock()
	if !l.dirty {
		l.mu.Unlock()
		return
	}
	text := l.text
	l.dirty = false
	l.mu.Unlock()
	l.onUpdate(text)
}

// Set overwrites the status text. Empty strings are ignored so operations
// that report "no change" leave the last status visible.
func (l *Line) Set(text string) {
	if text == "" {
		return
	}
	l.mu.Lock()
	if l.reset != nil {
		l.reset.Stop()
		l.reset = nil
	}
	l.text = text
	l.dirty = true
	l.mu.Unlock()
}

// SetWithReset overwrites the status text and schedules a fall back to
// ReadyText after d. Used by the clipboard copy path.
func (l *Line) SetWithReset(text string, d time.Duration) {
	l.Set(text)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.reset = time.AfterFunc(d, func() { l.Set(ReadyText) })
}

// Text returns the current status text.
func (l *Line) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// Close stops the ticker and performs a final push of unsent text.
func (l *Line) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	if l.reset != nil {
		l.reset.Stop()
		l.reset = nil
	}
	l.mu.Unlock()

	l.ticker.Stop()
	close(l.done)
	l.flush()
}
