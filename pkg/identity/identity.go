package identity

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/config"
)

// Identity is the signed-in view supplied by the external identity
// collaborator. The core treats it as an opaque gate plus an identifier:
// the user ID is attached to requests and never validated client-side.
type Identity struct {
	UserID string
	token  string
}

// FromConfig resolves the current identity. In the unauthenticated build
// there is no identity concept and (nil, false) is returned with ok=true
// semantics handled by the caller; in the authenticated build a missing
// user ID means signed-out.
func FromConfig(cfg *config.Config) (*Identity, bool) {
	if !cfg.AuthRequired {
		return nil, true
	}
	if cfg.UserID == "" {
		return nil, false
	}
	return &Identity{UserID: cfg.UserID, token: cfg.AccessToken}, true
}

// HTTPClient returns a client that attaches the identity's bearer token to
// every request. With no token configured it returns a plain client; the
// service then sees only the user_id query/body fields.
func (id *Identity) HTTPClient(ctx context.Context) *http.Client {
	base := &http.Client{Timeout: 15 * time.Second}
	if id == nil || id.token == "" {
		return base
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: id.token})
	return oauth2.NewClient(ctx, ts)
}
