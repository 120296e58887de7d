package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"giveaway-picker/internal/model"
)

type fbComment struct {
	ID          string `mapstructure:"id"`
	Message     string `mapstructure:"message"`
	CreatedTime string `mapstructure:"created_time"`
	LikeCount   int    `mapstructure:"like_count"`
	From        struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"from"`
}

func normalizeFacebook(raw map[string]any) model.Comment {
	var c fbComment
	decodeLoose(raw, &c)
	return model.Comment{
		ID:        c.ID,
		Username:  firstNonEmpty("Unknown", c.From.Name),
		Text:      c.Message,
		Timestamp: c.CreatedTime,
		Likes:     nonNegative(c.LikeCount),
	}
}

func facebookRequest(ctx context.Context, baseURL, token, postID string) (*http.Request, error) {
	q := url.Values{
		"access_token": {token},
		"fields":       {"id,message,created_time,like_count,from"},
	}
	endpoint := fmt.Sprintf("%s/%s/%s/comments?%s", baseURL, graphVersion, url.PathEscape(postID), q.Encode())
	return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
}

func init() {
	register(Descriptor{
		Name:           "facebook",
		DemoCredential: "demo-token",
		BuildRequest:   facebookRequest,
		Items:          func(body map[string]any) []any { return list(body["data"]) },
		Normalize:      normalizeFacebook,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`/posts/([^/]+)`),
			regexp.MustCompile(`story_fbid=([^&]+)`),
		},
		Demo: []model.Comment{
			{ID: "1", Username: "Maria Rodriguez", Text: "This is amazing! I love Facebook giveaways 🎉", Timestamp: "2024-06-28T09:30:00Z", Likes: 25},
			{ID: "2", Username: "John Smith", Text: "Count me in! This looks fantastic", Timestamp: "2024-06-28T09:00:00Z", Likes: 18},
		},
	})
}
