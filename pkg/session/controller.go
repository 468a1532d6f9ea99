package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/media"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/metrics"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/post"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/postapi"
)

// State is the full application state a controller operation works on.
// Operations take a State and return the next one inside a Result; nothing
// is mutated ambiently, so callers (and tests) can compare pre/post state
// directly.
type State struct {
	Posts   []post.Post
	Pending string
	Tone    post.Tone
	UserID  string
	Status  string
}

// Outcome tags how an operation ended.
type Outcome string

const (
	// Success: the operation did what the user asked.
	Success Outcome = "success"
	// Degraded: a collaborator failed and the operation fell back to a
	// status-message (or equivalent) recovery. Never fatal.
	Degraded Outcome = "degraded"
	// Rejected: local validation stopped the operation before any
	// request was sent.
	Rejected Outcome = "rejected"
)

// Result carries the next state plus the operation outcome. Alert, when
// set, is a blocking user-facing message. No error ever escapes past a
// Result; the application stays interactive after every failure.
type Result struct {
	State   State
	Outcome Outcome
	Alert   string
	Err     error
}

// Capabilities select the app variant. The authenticated variant omits
// image submission entirely; that divergence is deliberate.
type Capabilities struct {
	ImageUploadEnabled bool
	AuthRequired       bool
}

// Controller orchestrates submission to the generation service and keeps
// the post list and status projection current. The list model is
// deliberately simple: every mutation re-fetches the full collection, and
// a race between two in-flight operations resolves as last writer wins.
type Controller struct {
	api     *postapi.Client
	caps    Capabilities
	tracker *metrics.Tracker
	log     zerolog.Logger
}

type ControllerOptions struct {
	API          *postapi.Client
	Capabilities Capabilities
	Tracker      *metrics.Tracker // optional
	Log          zerolog.Logger
}

func NewController(opts ControllerOptions) *Controller {
	return &Controller{
		api:     opts.API,
		caps:    opts.Capabilities,
		tracker: opts.Tracker,
		log:     opts.Log,
	}
}

// Capabilities returns the variant flags the controller was built with.
func (c *Controller) Capabilities() Capabilities {
	return c.caps
}

// ListPosts replaces the post list with a fresh fetch, scoped to the
// current identity in the authenticated build. On transport failure the
// previous list stays untouched and only the status degrades.
func (c *Controller) ListPosts(ctx context.Context, st State) Result {
	done := c.observe("list_posts", "")

	userID := ""
	if c.caps.AuthRequired {
		userID = st.UserID
	}

	posts, err := c.api.ListPosts(ctx, userID)
	if err != nil {
		c.log.Warn().Err(err).Msg("fetching posts")
		st.Status = "Error: Backend not connected"
		done(string(Degraded))
		return Result{State: st, Outcome: Degraded, Err: err}
	}

	st.Posts = posts
	done(string(Success))
	return Result{State: st, Outcome: Success}
}

// SubmitText sends the pending text for caption generation. Empty text is
// rejected locally with a blocking alert and no request. On success the
// pending buffer clears and the list refreshes; on failure the pending
// text survives so the user can retry.
func (c *Controller) SubmitText(ctx context.Context, st State) Result {
	done := c.observe("submit_text", string(st.Tone))

	if st.Pending == "" {
		done(string(Rejected))
		return Result{State: st, Outcome: Rejected, Alert: "Please speak or type something first!"}
	}
	if c.caps.AuthRequired && st.UserID == "" {
		done(string(Rejected))
		return Result{State: st, Outcome: Rejected, Alert: "Please sign in first."}
	}

	st.Status = fmt.Sprintf("Generating %s Content... Please Wait", st.Tone)

	req := postapi.CreateRequest{Content: st.Pending, Tone: st.Tone}
	if c.caps.AuthRequired {
		req.UserID = st.UserID
	}

	if _, err := c.api.CreatePost(ctx, req); err != nil {
		c.log.Warn().Err(err).Msg("creating post")
		st.Status = "Error Saving."
		done(string(Degraded))
		return Result{State: st, Outcome: Degraded, Alert: "Failed to save.", Err: err}
	}

	st.Pending = ""
	st = c.ListPosts(ctx, st).State
	// Status set after the refetch: last writer wins, by design of the
	// single status projection.
	st.Status = "Content Generated!"
	done(string(Success))
	return Result{State: st, Outcome: Success}
}

// SubmitImage sends an uploaded photo plus the selected tone as a
// multipart payload. Absent in the authenticated variant.
func (c *Controller) SubmitImage(ctx context.Context, st State, part *media.ImagePart) Result {
	done := c.observe("submit_image", string(st.Tone))

	if !c.caps.ImageUploadEnabled {
		done(string(Rejected))
		return Result{State: st, Outcome: Rejected, Alert: "Image upload is not available in this build."}
	}
	if part == nil {
		// No file selected: silently rejected, matching the original.
		done(string(Rejected))
		return Result{State: st, Outcome: Rejected}
	}

	st.Status = "Uploading & Analyzing Image..."

	if _, err := c.api.UploadImage(ctx, part, st.Tone); err != nil {
		c.log.Warn().Err(err).Msg("uploading image")
		st.Status = "Error Uploading Image."
		done(string(Degraded))
		return Result{State: st, Outcome: Degraded, Alert: "Upload failed.", Err: err}
	}

	st = c.ListPosts(ctx, st).State
	st.Status = "Vision Analysis Complete!"
	done(string(Success))
	return Result{State: st, Outcome: Success}
}

func (c *Controller) observe(op, tone string) func(outcome string) {
	if c.tracker == nil {
		return func(string) {}
	}
	return c.tracker.Observe(op, tone, time.Now())
}
