package announce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Client is a minimal client for the Quaily posts API.
type Client struct {
	baseURL     string
	apiKey      string
	http        *http.Client
	createPath  string
	publishPath string
}

// NewClient expects baseURL like "https://api.quaily.com/v1".
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		http:        &http.Client{Timeout: timeout},
		createPath:  "/lists/%s/posts",
		publishPath: "/lists/%s/posts/%s/publish",
	}
}

func (c *Client) do(req *http.Request, what string) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%s failed: status=%d body=%s", what, resp.StatusCode, string(b))
	}
	return resp, nil
}

// CreatePost creates a draft and returns its id.
func (c *Client) CreatePost(ctx context.Context, channel string, params map[string]any) (string, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+fmt.Sprintf(c.createPath, channel), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(req, "create post")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out map[string]any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return "", fmt.Errorf("decode create post response: %w", err)
	}
	candidates := []any{out["id"]}
	if data, ok := out["data"].(map[string]any); ok {
		candidates = append(candidates, data["id"])
	}
	for _, v := range candidates {
		if id, err := cast.ToStringE(v); err == nil && id != "" {
			return id, nil
		}
	}
	return "", errors.New("create post: missing id in response")
}

// PublishPost publishes a created post.
func (c *Client) PublishPost(ctx context.Context, channel, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("empty post id")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+fmt.Sprintf(c.publishPath, channel, id), http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.do(req, "publish post")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// UploadAttachment uploads content as a file and returns its hosted URL.
func (c *Client) UploadAttachment(ctx context.Context, name string, content io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/attachments?encrypted="+strconv.FormatBool(false), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.do(req, "upload attachment")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var out struct {
		Data struct {
			ViewURL string `json:"view_url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode attachment response: %w", err)
	}
	if strings.TrimSpace(out.Data.ViewURL) == "" {
		return "", errors.New("attachment response missing view_url")
	}
	return out.Data.ViewURL, nil
}

// PublishDocument creates and publishes a post from a parsed document. The
// frontmatter becomes the post params; a "YYYY-MM-DD HH:MM" datetime is
// converted to RFC3339.
func PublishDocument(ctx context.Context, c *Client, doc Document, channel string) (string, error) {
	params := make(map[string]any, len(doc.Frontmatter)+2)
	for k, v := range doc.Frontmatter {
		params[k] = v
	}
	params["channel_slug"] = channel
	params["content"] = doc.Body
	if s, ok := params["datetime"].(string); ok {
		if t, err := time.Parse("2006-01-02 15:04", s); err == nil {
			params["datetime"] = t.Format(time.RFC3339)
		}
	}
	id, err := c.CreatePost(ctx, channel, params)
	if err != nil {
		return "", err
	}
	return id, c.PublishPost(ctx, channel, id)
}
