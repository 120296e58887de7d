package platform

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"giveaway-picker/internal/config"
	"giveaway-picker/internal/model"
)

// ErrUnsupported is the error text for unknown platform names.
const ErrUnsupported = "Unsupported platform"

// Service is the single entry point over all platform clients.
type Service struct {
	clients map[string]*Client
}

// NewService builds a facade over the given clients, keyed by their name.
func NewService(clients ...*Client) *Service {
	m := make(map[string]*Client, len(clients))
	for _, c := range clients {
		m[c.Name()] = c
	}
	return &Service{clients: m}
}

// NewServiceFromConfig creates one client per registered platform using the
// credentials in cfg. Platforms without a credential run in demo mode.
func NewServiceFromConfig(cfg config.PlatformsConfig) (*Service, error) {
	byName := cfg.ByName()
	var clients []*Client
	for _, name := range Names() {
		d, _ := Lookup(name)
		pc := byName[name]
		timeout := 10 * time.Second
		if pc.Timeout != "" {
			t, err := time.ParseDuration(pc.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid timeout for %s: %w", name, err)
			}
			timeout = t
		}
		clients = append(clients, NewClient(d, Options{
			Credential:        pc.Credential,
			BaseURL:           pc.BaseURL,
			Timeout:           timeout,
			RequestsPerSecond: pc.RequestsPerSecond,
		}))
	}
	return NewService(clients...), nil
}

// GetComments dispatches to the matching client. Unknown platforms yield an
// "Unsupported platform" failure result.
func (s *Service) GetComments(ctx context.Context, platform, postID string) model.RetrievalResult {
	c, ok := s.clients[strings.ToLower(strings.TrimSpace(platform))]
	if !ok {
		return model.Failed(ErrUnsupported)
	}
	return c.FetchComments(ctx, postID)
}

// ExtractPostID pulls the platform's post identifier out of rawURL. It
// returns false for malformed URLs, unknown platforms and URLs that match
// none of the platform's patterns.
func (s *Service) ExtractPostID(rawURL, platform string) (string, bool) {
	return ExtractPostID(rawURL, platform)
}

// DemoComments returns the platform's demo dataset.
func (s *Service) DemoComments(platform string) ([]model.Comment, bool) {
	d, ok := Lookup(platform)
	if !ok {
		return nil, false
	}
	return d.DemoComments(), true
}

// Platforms lists the platforms this service can serve.
func (s *Service) Platforms() []string {
	names := make([]string, 0, len(s.clients))
	for n := range s.clients {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DemoMode reports whether platform is served from demo data.
func (s *Service) DemoMode(platform string) bool {
	c, ok := s.clients[strings.ToLower(strings.TrimSpace(platform))]
	return ok && c.DemoMode()
}

// ExtractPostID is the pure, stateless form of Service.ExtractPostID.
func ExtractPostID(rawURL, platform string) (string, bool) {
	d, ok := Lookup(platform)
	if !ok {
		return "", false
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return d.MatchPostID(rawURL)
}
