package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Tone selects the stylistic register requested from the generation service.
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneFunny        Tone = "Funny"
	ToneSarcastic    Tone = "Sarcastic"
	ToneInspiring    Tone = "Inspiring"
	ToneGenZ         Tone = "Gen Z"
)

// Tones lists every tone the service accepts, in menu order.
var Tones = []Tone{ToneProfessional, ToneFunny, ToneSarcastic, ToneInspiring, ToneGenZ}

// ParseTone resolves user input to a known tone. Matching is exact on the
// wire value plus a "genz" convenience spelling.
func ParseTone(s string) (Tone, error) {
	for _, t := range Tones {
		if s == string(t) {
			return t, nil
		}
	}
	if s == "GenZ" || s == "genz" {
		return ToneGenZ, nil
	}
	return "", fmt.Errorf("unknown tone %q (use: Professional, Funny, Sarcastic, Inspiring, Gen Z)", s)
}

// Post is a generated social-media post owned by the remote service. The
// client holds posts read-only; the list is always replaced wholesale by a
// fresh fetch, never patched.
//
// Exactly one of ImageData/ImageSeed is populated, selected by IsUpload.
type Post struct {
	ID               int64  `json:"id,omitempty"`
	UserID           string `json:"user_id,omitempty"`
	Content          string `json:"content"`
	Tone             Tone   `json:"tone"`
	InstagramVersion string `json:"instagram_version"`
	TwitterVersion   string `json:"twitter_version"`
	IsUpload         Flag   `json:"is_upload"`
	ImageData        string `json:"image_data,omitempty"`
	ImageSeed        Seed   `json:"image_seed,omitempty"`
}

// Flag is a bool that also accepts the 0/1 integers the service's SQLite
// schema produces for its is_upload column.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "0", "false":
		*f = false
		return nil
	case "1", "true":
		*f = true
		return nil
	}
	return fmt.Errorf("invalid flag value %s", data)
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// Seed is the opaque stock-image lock token. The service stores it as an
// integer; the client never interprets it beyond string equality.
type Seed string

func (s *Seed) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 1 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Seed(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid seed value %s", data)
	}
	*s = Seed(n.String())
	return nil
}

func (s Seed) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(s))
}
