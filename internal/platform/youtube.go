package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"giveaway-picker/internal/model"
)

type ytSnippet struct {
	AuthorDisplayName string `mapstructure:"authorDisplayName"`
	TextDisplay       string `mapstructure:"textDisplay"`
	PublishedAt       string `mapstructure:"publishedAt"`
	LikeCount         int    `mapstructure:"likeCount"`
}

type ytComment struct {
	ID      string    `mapstructure:"id"`
	Snippet ytSnippet `mapstructure:"snippet"`
}

// ytThread is one item of commentThreads.list. Replies are only present
// when a caller asks for part=snippet,replies.
type ytThread struct {
	ID      string `mapstructure:"id"`
	Snippet struct {
		TopLevelComment ytComment `mapstructure:"topLevelComment"`
	} `mapstructure:"snippet"`
	Replies struct {
		Comments []ytComment `mapstructure:"comments"`
	} `mapstructure:"replies"`
}

func (c ytComment) canonical(id string) model.Comment {
	return model.Comment{
		ID:        id,
		Username:  firstNonEmpty("Unknown", c.Snippet.AuthorDisplayName),
		Text:      c.Snippet.TextDisplay,
		Timestamp: c.Snippet.PublishedAt,
		Likes:     nonNegative(c.Snippet.LikeCount),
	}
}

func normalizeYouTube(raw map[string]any) model.Comment {
	var t ytThread
	decodeLoose(raw, &t)
	out := t.Snippet.TopLevelComment.canonical(t.ID)
	for _, r := range t.Replies.Comments {
		out.Replies = append(out.Replies, r.canonical(r.ID))
	}
	return out
}

func youtubeRequest(ctx context.Context, baseURL, key, videoID string) (*http.Request, error) {
	q := url.Values{
		"part":       {"snippet"},
		"videoId":    {videoID},
		"key":        {key},
		"maxResults": {strconv.Itoa(MaxComments)},
	}
	endpoint := fmt.Sprintf("%s/youtube/v3/commentThreads?%s", baseURL, q.Encode())
	return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
}

func init() {
	register(Descriptor{
		Name:           "youtube",
		DemoCredential: "demo-key",
		BuildRequest:   youtubeRequest,
		Items:          func(body map[string]any) []any { return list(body["items"]) },
		Normalize:      normalizeYouTube,
		Patterns:       []*regexp.Regexp{regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`)},
		Demo: []model.Comment{
			{ID: "1", Username: "TechReviewer2024", Text: "First! Amazing giveaway, been subscribed for years! 🔥", Timestamp: "2024-06-28T09:45:00Z", Likes: 234, Verified: true},
			{ID: "2", Username: "GamingWithFriends", Text: "This is exactly what I needed for my setup! Good luck everyone 🎮", Timestamp: "2024-06-28T09:30:00Z", Likes: 156},
		},
	})
}
