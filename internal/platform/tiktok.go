package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"giveaway-picker/internal/model"
)

type ttComment struct {
	ID        string `mapstructure:"id"`
	Text      string `mapstructure:"text"`
	LikeCount int    `mapstructure:"like_count"`
	User      struct {
		DisplayName string `mapstructure:"display_name"`
	} `mapstructure:"user"`
}

func normalizeTikTok(raw map[string]any) model.Comment {
	var c ttComment
	decodeLoose(raw, &c)
	var created any
	if raw != nil {
		created = raw["create_time"]
	}
	return model.Comment{
		ID:        c.ID,
		Username:  firstNonEmpty("Unknown", c.User.DisplayName),
		Text:      c.Text,
		Timestamp: unixToRFC3339(created),
		Likes:     nonNegative(c.LikeCount),
	}
}

// TikTok comment access requires an approved app; the endpoint below is the
// legacy open-api list call.
func tiktokRequest(ctx context.Context, baseURL, token, videoID string) (*http.Request, error) {
	q := url.Values{"video_id": {videoID}}
	endpoint := fmt.Sprintf("%s/video/comment/list/?%s", baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func init() {
	register(Descriptor{
		Name:           "tiktok",
		DemoCredential: "demo-token",
		BuildRequest:   tiktokRequest,
		Items:          func(body map[string]any) []any { return list(path(body, "data", "comments")) },
		Normalize:      normalizeTikTok,
		Patterns:       []*regexp.Regexp{regexp.MustCompile(`/video/(\d+)`)},
		Demo: []model.Comment{
			{ID: "1", Username: "dancing_queen_2024", Text: "This is fire! 🔥🔥🔥 Count me in!", Timestamp: "2024-06-28T09:50:00Z", Likes: 142},
			{ID: "2", Username: "viral_content_king", Text: "OMG yes! This trend is everything ✨", Timestamp: "2024-06-28T09:40:00Z", Likes: 89, Verified: true},
		},
	})
}
