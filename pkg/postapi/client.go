package postapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/media"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/post"
)

const defaultTimeout = 15 * time.Second

// Client talks to the post-generation service. It is a thin transport: no
// retries, no caching; callers decide how failures surface to the user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL. A nil httpClient gets
// a default with a 15s timeout; the authenticated build passes an
// oauth2-wrapped client instead.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// CreateRequest is the body of a text submission.
type CreateRequest struct {
	Content string    `json:"content"`
	Tone    post.Tone `json:"tone"`
	UserID  string    `json:"user_id,omitempty"`
}

// ListPosts fetches the full post collection, optionally scoped to a user.
func (c *Client) ListPosts(ctx context.Context, userID string) ([]post.Post, error) {
	endpoint := c.baseURL + "/posts"
	if userID != "" {
		endpoint += "?user_id=" + url.QueryEscape(userID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var posts []post.Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// CreatePost submits text content for caption generation and returns the
// persisted post. Generation is synchronous from the client's perspective.
func (c *Client) CreatePost(ctx context.Context, cr CreateRequest) (*post.Post, error) {
	payload, err := json.Marshal(cr)
	if err != nil {
		return nil, fmt.Errorf("encode post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/posts", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var created post.Post
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created post: %w", err)
	}
	return &created, nil
}

// UploadImage sends an image plus tone as a multipart payload and returns
// the persisted upload post.
func (c *Client) UploadImage(ctx context.Context, part *media.ImagePart, tone post.Tone) (*post.Post, error) {
	raw, err := part.RawBytes()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", part.FileName)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(raw); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.WriteField("tone", string(tone)); err != nil {
		return nil, fmt.Errorf("write tone field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-image", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var created post.Post
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created post: %w", err)
	}
	return &created, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	// The service reports some failures as a 200 with an error field.
	var svcErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &svcErr) == nil && svcErr.Error != "" {
		return nil, fmt.Errorf("service error: %s", svcErr.Error)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("service returned %s", resp.Status)
	}

	return body, nil
}
