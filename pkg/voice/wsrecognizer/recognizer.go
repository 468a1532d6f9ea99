// Package wsrecognizer implements the voice.Recognizer port against a
// websocket transcription service. The service receives a start frame and
// replies with a single result frame once it has recognized one utterance.
package wsrecognizer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/voice"
)

// startFrame opens a single-shot recognition session.
type startFrame struct {
	Type       string `json:"type"` // "start"
	Locale     string `json:"locale"`
	SingleShot bool   `json:"single_shot"`
}

// resultFrame carries recognition results. Only the first alternative of
// the first result is used.
type resultFrame struct {
	Type    string `json:"type"` // "result", anything else is ignored
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Recognizer dials the transcription service per session. An empty URL
// means the capability is absent in this environment.
type Recognizer struct {
	url    string
	dialer *websocket.Dialer
	log    zerolog.Logger
}

func New(url string, log zerolog.Logger) *Recognizer {
	return &Recognizer{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Available reports whether a transcription endpoint is configured.
func (r *Recognizer) Available() bool {
	return r.url != ""
}

// Start dials the service and begins a single-shot session. Dial failures
// surface here so the caller can fail fast without a state change.
func (r *Recognizer) Start(ctx context.Context, cfg voice.SessionConfig, onResult func(transcript string)) (voice.Session, error) {
	conn, _, err := r.dialer.DialContext(ctx, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial speech service: %w", err)
	}

	if err := conn.WriteJSON(startFrame{Type: "start", Locale: cfg.Locale, SingleShot: true}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send start frame: %w", err)
	}

	s := &session{conn: conn, log: r.log}
	go s.readLoop(onResult)
	return s, nil
}

type session struct {
	conn *websocket.Conn
	log  zerolog.Logger

	closeOnce sync.Once
}

// readLoop waits for the first result frame, delivers its transcript, and
// closes the connection; the session self-terminates after one utterance.
// A connection failure before any result simply ends the loop.
func (s *session) readLoop(onResult func(transcript string)) {
	defer s.close()
	for {
		var frame resultFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			s.log.Debug().Err(err).Msg("speech session closed without result")
			return
		}
		if frame.Type != "result" {
			continue
		}
		if len(frame.Results) == 0 || len(frame.Results[0].Alternatives) == 0 {
			continue
		}
		onResult(frame.Results[0].Alternatives[0].Transcript)
		return
	}
}

// Stop terminates the session without delivering a transcript.
func (s *session) Stop() error {
	s.close()
	return nil
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.conn.Close()
	})
}
