package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillDefaults(t *testing.T) {
	var c Config
	c.FillDefaults()

	assert.Equal(t, "info", c.App.LogLevel)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "demo", c.Storage.Backend)
	assert.Equal(t, 100, c.Storage.HistoryCap)
	assert.Equal(t, "https://graph.facebook.com", c.Platforms.Instagram.BaseURL)
	assert.Equal(t, "https://www.googleapis.com", c.Platforms.YouTube.BaseURL)
	assert.Equal(t, "https://open-api.tiktok.com", c.Platforms.TikTok.BaseURL)
	assert.Equal(t, "10s", c.Platforms.Facebook.Timeout)
	assert.Equal(t, 5.0, c.Platforms.TikTok.RequestsPerSecond)
	assert.Empty(t, c.Platforms.Instagram.Credential, "no credential means demo mode")
	assert.Equal(t, "5m", c.Comments.CacheTTL)
	assert.Equal(t, "24h", c.Auth.TokenTTL)
	assert.Equal(t, "Giveaway winners {.CurrentDate}", c.Announce.Title)
}

func TestFillDefaultsKeepsOverrides(t *testing.T) {
	c := Config{
		Storage:   StorageConfig{Backend: " Redis "},
		Platforms: PlatformsConfig{YouTube: PlatformConfig{Credential: " key ", BaseURL: "http://local"}},
	}
	c.FillDefaults()

	assert.Equal(t, "redis", c.Storage.Backend)
	assert.Equal(t, "key", c.Platforms.YouTube.Credential)
	assert.Equal(t, "http://local", c.Platforms.YouTube.BaseURL)
	assert.Len(t, c.Platforms.ByName(), 4)
}
