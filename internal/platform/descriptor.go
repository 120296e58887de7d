package platform

import (
	"context"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"giveaway-picker/internal/model"
)

// MaxComments caps how many comments a single fetch returns.
const MaxComments = 100

// Descriptor captures everything that differs between platforms. The generic
// Client does the rest.
type Descriptor struct {
	// Name is the lowercase platform key, e.g. "instagram".
	Name string
	// DemoCredential is the placeholder that forces demo mode.
	DemoCredential string
	// BuildRequest creates the comment list request for postID.
	BuildRequest func(ctx context.Context, baseURL, credential, postID string) (*http.Request, error)
	// Items locates the raw comment list inside a decoded response body.
	Items func(body map[string]any) []any
	// Normalize maps one raw comment to the canonical shape. Must be total.
	Normalize func(raw map[string]any) model.Comment
	// Patterns are tried in order against a post URL; group 1 is the id.
	Patterns []*regexp.Regexp
	// Demo is the fixed dataset served in demo mode.
	Demo []model.Comment
}

// MatchPostID applies the URL patterns to s.
func (d Descriptor) MatchPostID(s string) (string, bool) {
	for _, re := range d.Patterns {
		if m := re.FindStringSubmatch(s); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

// DemoComments returns a copy of the demo dataset.
func (d Descriptor) DemoComments() []model.Comment {
	out := make([]model.Comment, len(d.Demo))
	copy(out, d.Demo)
	return out
}

var registry = map[string]Descriptor{}

// register is called from each platform file's init.
func register(d Descriptor) {
	registry[strings.ToLower(d.Name)] = d
}

// Lookup returns the descriptor for a platform name (case-insensitive).
func Lookup(name string) (Descriptor, bool) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Names lists the registered platforms in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
