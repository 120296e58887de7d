package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"giveaway-picker/internal/model"
)

const graphVersion = "v18.0"

// igComment mirrors the Instagram Graph comment fields we request.
type igComment struct {
	ID        string `mapstructure:"id"`
	Username  string `mapstructure:"username"`
	Text      string `mapstructure:"text"`
	Timestamp string `mapstructure:"timestamp"`
	LikeCount int    `mapstructure:"like_count"`
	User      struct {
		Username string `mapstructure:"username"`
		Verified bool   `mapstructure:"verified"`
	} `mapstructure:"user"`
}

func normalizeInstagram(raw map[string]any) model.Comment {
	var c igComment
	decodeLoose(raw, &c)
	return model.Comment{
		ID:        c.ID,
		Username:  firstNonEmpty("unknown", c.Username, c.User.Username),
		Text:      c.Text,
		Timestamp: c.Timestamp,
		Likes:     nonNegative(c.LikeCount),
		Verified:  c.User.Verified,
	}
}

func instagramRequest(ctx context.Context, baseURL, token, postID string) (*http.Request, error) {
	q := url.Values{
		"access_token": {token},
		"fields":       {"id,text,timestamp,like_count,username,user{verified}"},
	}
	endpoint := fmt.Sprintf("%s/%s/%s/comments?%s", baseURL, graphVersion, url.PathEscape(postID), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func init() {
	register(Descriptor{
		Name:           "instagram",
		DemoCredential: "demo-token",
		BuildRequest:   instagramRequest,
		Items:          func(body map[string]any) []any { return list(body["data"]) },
		Normalize:      normalizeInstagram,
		Patterns:       []*regexp.Regexp{regexp.MustCompile(`/p/([^/]+)`)},
		Demo: []model.Comment{
			{ID: "1", Username: "sarah_adventures", Text: "This looks amazing! 🌟", Timestamp: "2024-06-28T10:30:00Z", Likes: 15, Verified: true},
			{ID: "2", Username: "mike_photographer", Text: "Count me in! Great contest", Timestamp: "2024-06-28T10:45:00Z", Likes: 8},
			{ID: "3", Username: "travel_with_emma", Text: "Would love to win this! ✨", Timestamp: "2024-06-28T11:00:00Z", Likes: 22, Verified: true},
			{ID: "4", Username: "fitness_guru_alex", Text: "Awesome giveaway! 💪", Timestamp: "2024-06-28T11:15:00Z", Likes: 12},
			{ID: "5", Username: "foodie_life_2024", Text: "Please pick me! 🙏", Timestamp: "2024-06-28T11:30:00Z", Likes: 5},
			{ID: "6", Username: "tech_reviewer_pro", Text: "This would be perfect for my content!", Timestamp: "2024-06-28T11:45:00Z", Likes: 18, Verified: true},
			{ID: "7", Username: "lifestyle_blogger_jen", Text: "Following all the rules! Good luck everyone", Timestamp: "2024-06-28T12:00:00Z", Likes: 9},
			{ID: "8", Username: "adventure_seeker_99", Text: "Hope I win! 🤞", Timestamp: "2024-06-28T12:15:00Z", Likes: 3},
		},
	})
}
