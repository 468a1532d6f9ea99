package voice

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// State of the capture machine. There are exactly two: capture is either
// off or waiting on a single utterance.
type State string

const (
	Idle      State = "idle"
	Listening State = "listening"
)

// SessionConfig fixes how a recognition session is acquired. Sessions are
// always single-shot: the recognizer stops itself after the first
// recognized utterance.
type SessionConfig struct {
	Locale string
}

// Session is a live recognition handle. Stop terminates capture without
// delivering a transcript.
type Session interface {
	Stop() error
}

// Recognizer is the host speech capability port. Implementations deliver
// at most one transcript per Start, from their own goroutine.
type Recognizer interface {
	Available() bool
	Start(ctx context.Context, cfg SessionConfig, onResult func(transcript string)) (Session, error)
}

// ToggleResult reports the outcome of the public Toggle entry point.
// Alert, when set, is a blocking user-facing message; Status is the new
// status-bar text (empty means leave it unchanged).
type ToggleResult struct {
	State  State
	Status string
	Alert  string
}

// Controller wraps a recognizer in the Idle/Listening machine. At most
// one session exists at a time; toggling while listening stops capture
// instead of opening a second session.
type Controller struct {
	recognizer   Recognizer
	locale       string
	onTranscript func(transcript string)
	onStatus     func(status string)
	log          zerolog.Logger

	mu      sync.Mutex
	state   State
	session Session
	gen     uint64 // bumped on every start/stop so stale results are dropped
}

// ControllerOptions wires the controller's collaborators. OnTranscript
// receives the captured utterance for the pending text buffer; OnStatus
// receives asynchronous status updates (result delivery happens off the
// Toggle call path).
type ControllerOptions struct {
	Recognizer   Recognizer
	Locale       string
	OnTranscript func(transcript string)
	OnStatus     func(status string)
	Log          zerolog.Logger
}

func NewController(opts ControllerOptions) *Controller {
	locale := opts.Locale
	if locale == "" {
		locale = "en-US"
	}
	return &Controller{
		recognizer:   opts.Recognizer,
		locale:       locale,
		onTranscript: opts.OnTranscript,
		onStatus:     opts.OnStatus,
		log:          opts.Log,
		state:        Idle,
	}
}

// State returns the current machine state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle is the single public entry point. Idle starts capture (or fails
// fast when the capability is absent); Listening stops it. A start while
// already listening is therefore equivalent to stop, never a second
// concurrent session.
func (c *Controller) Toggle(ctx context.Context) ToggleResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Listening {
		if c.session != nil {
			if err := c.session.Stop(); err != nil {
				c.log.Warn().Err(err).Msg("stopping recognition session")
			}
		}
		c.session = nil
		c.state = Idle
		c.gen++
		return ToggleResult{State: Idle, Status: "Stopped manually."}
	}

	if c.recognizer == nil || !c.recognizer.Available() {
		return ToggleResult{
			State: Idle,
			Alert: "Speech capture is not available. Set VOICEPOST_SPEECH_URL to a transcription service.",
		}
	}

	c.gen++
	myGen := c.gen
	handle, err := c.recognizer.Start(ctx, SessionConfig{Locale: c.locale}, func(transcript string) {
		c.deliver(myGen, transcript)
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("starting recognition session")
		return ToggleResult{State: Idle, Alert: "Could not start speech capture: " + err.Error()}
	}

	c.session = handle
	c.state = Listening
	return ToggleResult{State: Listening, Status: "Listening... toggle again to stop"}
}

// deliver handles the single transcript a session yields. The underlying
// session self-terminates after it, so no stop call is issued; results
// from a session already stopped manually are dropped.
func (c *Controller) deliver(gen uint64, transcript string) {
	c.mu.Lock()
	if c.state != Listening || c.gen != gen {
		c.mu.Unlock()
		return
	}
	c.session = nil
	c.state = Idle
	c.mu.Unlock()

	if c.onTranscript != nil {
		c.onTranscript(transcript)
	}
	if c.onStatus != nil {
		c.onStatus("Voice captured!")
	}
}
