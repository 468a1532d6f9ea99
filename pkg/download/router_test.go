package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/imageref"
)

// forbiddenTransport fails the test if any request goes through it.
type forbiddenTransport struct{ t *testing.T }

func (ft forbiddenTransport) RoundTrip(*http.Request) (*http.Response, error) {
	ft.t.Fatal("unexpected network call for embedded image")
	return nil, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func TestDownloadEmbedded(t *testing.T) {
	dir := t.TempDir()
	r := NewRouter(RouterOptions{
		Dir:        dir,
		HTTPClient: &http.Client{Transport: forbiddenTransport{t}},
		OpenURL:    func(string) error { t.Fatal("unexpected browser open"); return nil },
		Now:        fixedNow,
		Log:        zerolog.Nop(),
	})

	// "hello" base64-encoded.
	ref := imageref.ImageRef{Kind: imageref.Embedded, URI: "data:image/jpeg;base64,aGVsbG8="}
	outcome := r.Download(context.Background(), ref)

	require.Equal(t, Success, outcome.Status)
	assert.Equal(t, "Image Downloaded!", outcome.StatusLine)
	assert.Equal(t, filepath.Join(dir, "my-upload-1788264000000.jpg"), outcome.Path)

	raw, err := os.ReadFile(outcome.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))
}

func TestDownloadEmbeddedMalformed(t *testing.T) {
	r := NewRouter(RouterOptions{Dir: t.TempDir(), Now: fixedNow, Log: zerolog.Nop()})

	outcome := r.Download(context.Background(), imageref.ImageRef{Kind: imageref.Embedded, URI: "https://not-a-data-uri"})
	assert.Equal(t, Rejected, outcome.Status)
	assert.Error(t, outcome.Err)
}

func TestDownloadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("jpegbytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	r := NewRouter(RouterOptions{Dir: dir, Now: fixedNow, Log: zerolog.Nop()})

	outcome := r.Download(context.Background(), imageref.ImageRef{Kind: imageref.Remote, URI: srv.URL + "/800/800/cat?lock=1"})
	require.Equal(t, Success, outcome.Status)
	assert.Equal(t, filepath.Join(dir, "social-post-1788264000000.jpg"), outcome.Path)

	raw, err := os.ReadFile(outcome.Path)
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(raw))
}

func TestDownloadRemoteFetchFailureDegrades(t *testing.T) {
	var opened string
	r := NewRouter(RouterOptions{
		Dir:     t.TempDir(),
		OpenURL: func(url string) error { opened = url; return nil },
		Now:     fixedNow,
		Log:     zerolog.Nop(),
	})

	// Nothing listens on this port; the fetch fails and must degrade,
	// never propagate.
	uri := "http://127.0.0.1:1/800/800/cat?lock=1"
	outcome := r.Download(context.Background(), imageref.ImageRef{Kind: imageref.Remote, URI: uri})

	assert.Equal(t, Degraded, outcome.Status)
	assert.Equal(t, uri, outcome.FallbackURL)
	assert.Equal(t, uri, opened)
	assert.Error(t, outcome.Err)
	// Status is left stale on the fallback path.
	assert.Empty(t, outcome.StatusLine)
}

func TestDownloadRemoteServerErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	var opened string
	r := NewRouter(RouterOptions{
		Dir:     t.TempDir(),
		OpenURL: func(url string) error { opened = url; return nil },
		Now:     fixedNow,
		Log:     zerolog.Nop(),
	})

	outcome := r.Download(context.Background(), imageref.ImageRef{Kind: imageref.Remote, URI: srv.URL})
	assert.Equal(t, Degraded, outcome.Status)
	assert.Equal(t, srv.URL, opened)
}

func TestDownloadBrowserFailureStaysDegraded(t *testing.T) {
	r := NewRouter(RouterOptions{
		Dir:     t.TempDir(),
		OpenURL: func(string) error { return errors.New("popup blocked") },
		Now:     fixedNow,
		Log:     zerolog.Nop(),
	})

	outcome := r.Download(context.Background(), imageref.ImageRef{Kind: imageref.Remote, URI: "http://127.0.0.1:1/x"})
	assert.Equal(t, Degraded, outcome.Status)
}
