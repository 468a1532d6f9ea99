package status

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	mu      sync.Mutex
	updates []string
}

func (c *capture) record(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, text)
}

func (c *capture) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.updates) == 0 {
		return ""
	}
	return c.updates[len(c.updates)-1]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestLineFlushesOnInterval(t *testing.T) {
	c := &capture{}
	l := NewLine(10*time.Millisecond, c.record)
	defer l.Close()

	l.Set("Listening...")
	waitFor(t, func() bool { return c.last() == "Listening..." })
	assert.Equal(t, "Listening...", l.Text())
}

func TestLineLastWriterWins(t *testing.T) {
	c := &capture{}
	l := NewLine(50*time.Millisecond, c.record)
	defer l.Close()

	l.Set("Generating Funny Content... Please Wait")
	l.Set("Content Generated!")
	waitFor(t, func() bool { return c.last() == "Content Generated!" })
}

func TestLineEmptySetIgnored(t *testing.T) {
	c := &capture{}
	l := NewLine(10*time.Millisecond, c.record)
	defer l.Close()

	l.Set("Voice captured!")
	l.Set("")
	waitFor(t, func() bool { return c.last() == "Voice captured!" })
	assert.Equal(t, "Voice captured!", l.Text())
}

func TestLineResetAfterCopy(t *testing.T) {
	c := &capture{}
	l := NewLine(10*time.Millisecond, c.record)
	defer l.Close()

	l.SetWithReset("Copied to clipboard!", 30*time.Millisecond)
	waitFor(t, func() bool { return c.last() == "Copied to clipboard!" })
	waitFor(t, func() bool { return c.last() == ReadyText })
}

func TestLineCloseFlushesPending(t *testing.T) {
	c := &capture{}
	l := NewLine(time.Hour, c.record)

	l.Set("Stopped manually.")
	l.Close()
	require.Equal(t, "Stopped manually.", c.last())

	// Close is idempotent.
	l.Close()
}
