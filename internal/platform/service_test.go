package platform

import (
	"context"
	"testing"

	"giveaway-picker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoService(t *testing.T) *Service {
	t.Helper()
	var cfg config.Config
	cfg.FillDefaults()
	svc, err := NewServiceFromConfig(cfg.Platforms)
	require.NoError(t, err)
	return svc
}

func TestUnsupportedPlatform(t *testing.T) {
	svc := demoService(t)
	for _, name := range []string{"", "myspace", "reddit", "instagramx"} {
		res := svc.GetComments(context.Background(), name, "123")
		assert.False(t, res.Success)
		assert.Equal(t, "Unsupported platform", res.Error)
		assert.Empty(t, res.Data)
	}
}

func TestGetCommentsDispatchIsCaseInsensitive(t *testing.T) {
	svc := demoService(t)
	res := svc.GetComments(context.Background(), "YouTube", "abc")
	require.True(t, res.Success)
	assert.Equal(t, "TechReviewer2024", res.Data[0].Username)
	assert.Equal(t, []string{"facebook", "instagram", "tiktok", "youtube"}, svc.Platforms())
}

func TestExtractPostID(t *testing.T) {
	cases := []struct {
		url, platform, want string
		ok                  bool
	}{
		{"https://www.instagram.com/p/CxYz123/", "instagram", "CxYz123", true},
		{"https://instagram.com/p/AbC_-9", "Instagram", "AbC_-9", true},
		{"https://www.facebook.com/acme/posts/pfbid02abc", "facebook", "pfbid02abc", true},
		{"https://www.facebook.com/permalink.php?story_fbid=998877&id=1", "facebook", "998877", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "youtube", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=x", "youtube", "dQw4w9WgXcQ", true},
		{"https://www.tiktok.com/@user/video/7301234567890123456", "tiktok", "7301234567890123456", true},

		{"https://example.com/foo", "instagram", "", false},
		{"https://www.tiktok.com/@user/video/abc", "tiktok", "", false},
		{"https://vimeo.com/12345", "youtube", "", false},
		{"/p/CxYz123", "instagram", "", false},
		{"not a url", "facebook", "", false},
		{"", "tiktok", "", false},
		{"https://www.instagram.com/p/CxYz123/", "myspace", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractPostID(tc.url, tc.platform)
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.want, got, tc.url)
	}
}

func TestDemoComments(t *testing.T) {
	svc := demoService(t)
	comments, ok := svc.DemoComments("instagram")
	require.True(t, ok)
	assert.Len(t, comments, 8)
	_, ok = svc.DemoComments("nope")
	assert.False(t, ok)
	assert.True(t, svc.DemoMode("tiktok"))
}

func TestNewServiceFromConfigRejectsBadTimeout(t *testing.T) {
	var cfg config.Config
	cfg.FillDefaults()
	cfg.Platforms.TikTok.Timeout = "soon"
	_, err := NewServiceFromConfig(cfg.Platforms)
	assert.Error(t, err)
}
