package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"giveaway-picker/internal/model"

	"golang.org/x/time/rate"
)

// Options configures a Client. Zero values fall back to sensible defaults.
type Options struct {
	Credential        string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client fetches comments for one platform. It never returns an error:
// every failure is reported through model.RetrievalResult.
type Client struct {
	desc       Descriptor
	credential string
	baseURL    string
	http       *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the given platform descriptor.
func NewClient(d Descriptor, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		desc:       d,
		credential: strings.TrimSpace(opts.Credential),
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		http:       hc,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Name returns the platform name.
func (c *Client) Name() string { return c.desc.Name }

// DemoMode reports whether the client serves the demo dataset instead of
// calling the platform.
func (c *Client) DemoMode() bool {
	return c.credential == "" || c.credential == c.desc.DemoCredential
}

// FetchComments retrieves up to MaxComments comments for postID.
func (c *Client) FetchComments(ctx context.Context, postID string) model.RetrievalResult {
	if c.DemoMode() {
		return model.RetrievalResult{Success: true, Data: c.desc.DemoComments(), Source: model.SourceDemo}
	}
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return model.Failed(c.desc.Name + ": empty post id")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return model.Failed(fmt.Sprintf("%s: %v", c.desc.Name, err))
	}

	start := time.Now()
	req, err := c.desc.BuildRequest(ctx, c.baseURL, c.credential, postID)
	if err != nil {
		return model.Failed(fmt.Sprintf("%s: build request: %v", c.desc.Name, redact(err)))
	}
	resp, err := c.http.Do(req)
	if err != nil {
		err = redact(err)
		slog.Warn(c.desc.Name+": request failed", "post_id", postID, "error", err)
		return model.Failed(fmt.Sprintf("%s: %v", c.desc.Name, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn(c.desc.Name+": non-2xx response", "post_id", postID, "status", resp.StatusCode, "body", string(b))
		return model.Failed(fmt.Sprintf("%s API error: %d", c.desc.Name, resp.StatusCode))
	}

	var body map[string]any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return model.Failed(fmt.Sprintf("%s: decode response: %v", c.desc.Name, err))
	}

	items := c.desc.Items(body)
	if len(items) == 0 {
		if msg := apiError(body); msg != "" {
			return model.Failed(fmt.Sprintf("%s API error: %s", c.desc.Name, msg))
		}
	}
	if len(items) > MaxComments {
		items = items[:MaxComments]
	}
	comments := make([]model.Comment, 0, len(items))
	for _, it := range items {
		raw, _ := it.(map[string]any)
		comments = append(comments, c.desc.Normalize(raw))
	}

	slog.Info(c.desc.Name+": fetched comments", "post_id", postID, "count", len(comments), "duration", time.Since(start))
	return model.RetrievalResult{
		Success:            true,
		Data:               comments,
		RateLimitRemaining: remainingQuota(resp.Header),
		Source:             model.SourceLive,
	}
}

// redact drops the query string from URL errors. Instagram, Facebook and
// YouTube carry the credential there.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	target := "request"
	if u, perr := url.Parse(ue.URL); perr == nil {
		u.RawQuery, u.Fragment, u.User = "", "", nil
		target = fmt.Sprintf("%q", u.String())
	}
	return fmt.Errorf("%s %s: %w", ue.Op, target, ue.Err)
}
