package download

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/imageref"
)

// Status tags a download outcome. The degraded branch is an observable
// result, not a swallowed exception: a remote fetch that fails falls back
// to opening the image URL in the system browser.
type Status string

const (
	Success  Status = "success"
	Degraded Status = "degraded"
	Rejected Status = "rejected"
)

// Outcome reports where an image ended up. StatusLine is the new
// status-bar text; it is set only on the happy path, so the visible status
// stays stale after a fallback, matching the original behavior.
type Outcome struct {
	Status      Status
	Path        string // saved file, on Success
	FallbackURL string // URL handed to the browser, on Degraded
	StatusLine  string
	Err         error
}

// Router saves a displayed image to local storage. Embedded references are
// decoded in place with no network fetch; remote references are fetched
// over HTTP first.
type Router struct {
	dir        string
	httpClient *http.Client
	openURL    func(url string) error
	now        func() time.Time
	log        zerolog.Logger
}

// RouterOptions configures a Router. Zero-value fields get defaults: a
// 30s-timeout HTTP client, browser.OpenURL for the fallback, and
// time.Now for filename timestamps.
type RouterOptions struct {
	Dir        string
	HTTPClient *http.Client
	OpenURL    func(url string) error
	Now        func() time.Time
	Log        zerolog.Logger
}

func NewRouter(opts RouterOptions) *Router {
	r := &Router{
		dir:        opts.Dir,
		httpClient: opts.HTTPClient,
		openURL:    opts.OpenURL,
		now:        opts.Now,
		log:        opts.Log,
	}
	if r.httpClient == nil {
		r.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if r.openURL == nil {
		r.openURL = browser.OpenURL
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Download persists the referenced image. Remote failures never surface as
// errors to the caller's control flow; they degrade to a browser open.
func (r *Router) Download(ctx context.Context, ref imageref.ImageRef) Outcome {
	switch ref.Kind {
	case imageref.Embedded:
		return r.saveEmbedded(ref)
	case imageref.Remote:
		return r.saveRemote(ctx, ref)
	default:
		return Outcome{Status: Rejected, Err: fmt.Errorf("unknown image kind %q", ref.Kind)}
	}
}

// saveEmbedded writes the data-URI payload straight to disk.
func (r *Router) saveEmbedded(ref imageref.ImageRef) Outcome {
	idx := strings.Index(ref.URI, "base64,")
	if !strings.HasPrefix(ref.URI, "data:image") || idx < 0 {
		return Outcome{Status: Rejected, Err: fmt.Errorf("malformed data URI")}
	}

	raw, err := base64.StdEncoding.DecodeString(ref.URI[idx+len("base64,"):])
	if err != nil {
		return Outcome{Status: Rejected, Err: fmt.Errorf("decode embedded image: %w", err)}
	}

	name := fmt.Sprintf("my-upload-%d.jpg", r.now().UnixMilli())
	path, err := r.write(name, raw)
	if err != nil {
		return Outcome{Status: Rejected, Err: err}
	}

	r.log.Info().Str("path", path).Msg("embedded image saved")
	return Outcome{Status: Success, Path: path, StatusLine: "Image Downloaded!"}
}

// saveRemote fetches the stock image and writes it locally. Any failure
// along the way falls back to opening the URL in a new browser context.
func (r *Router) saveRemote(ctx context.Context, ref imageref.ImageRef) Outcome {
	raw, err := r.fetch(ctx, ref.URI)
	if err != nil {
		return r.degrade(ref.URI, err)
	}

	name := fmt.Sprintf("social-post-%d.jpg", r.now().UnixMilli())
	path, err := r.write(name, raw)
	if err != nil {
		return r.degrade(ref.URI, err)
	}

	r.log.Info().Str("path", path).Msg("remote image saved")
	return Outcome{Status: Success, Path: path, StatusLine: "Image Downloaded!"}
}

func (r *Router) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image fetch returned %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return raw, nil
}

func (r *Router) write(name string, raw []byte) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

func (r *Router) degrade(url string, cause error) Outcome {
	r.log.Warn().Err(cause).Str("url", url).Msg("download failed, opening in browser")
	if err := r.openURL(url); err != nil {
		// Even a blocked open stays non-fatal; the outcome records both.
		r.log.Warn().Err(err).Msg("browser fallback failed")
	}
	return Outcome{Status: Degraded, FallbackURL: url, Err: cause}
}
