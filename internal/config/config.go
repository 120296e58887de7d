package config

import "strings"

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // text or json
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"` // duration string, e.g., "10s"
}

// RedisConfig holds redis connection settings. URL wins over Addr when set.
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PlatformConfig configures one comment source. An empty Credential
// (or the platform's placeholder) keeps the client in demo mode.
type PlatformConfig struct {
	Credential        string  `mapstructure:"credential"`
	BaseURL           string  `mapstructure:"base_url"`
	Timeout           string  `mapstructure:"timeout"`             // duration string
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // outbound throttle
}

// PlatformsConfig groups the four comment sources.
type PlatformsConfig struct {
	Instagram PlatformConfig `mapstructure:"instagram"`
	Facebook  PlatformConfig `mapstructure:"facebook"`
	YouTube   PlatformConfig `mapstructure:"youtube"`
	TikTok    PlatformConfig `mapstructure:"tiktok"`
}

// ByName returns the platform settings keyed by lowercase platform name.
func (p PlatformsConfig) ByName() map[string]PlatformConfig {
	return map[string]PlatformConfig{
		"instagram": p.Instagram,
		"facebook":  p.Facebook,
		"youtube":   p.YouTube,
		"tiktok":    p.TikTok,
	}
}

// WatchConfig is a post whose comments are kept warm in the cache.
type WatchConfig struct {
	Platform string `mapstructure:"platform"`
	URL      string `mapstructure:"url"`
}

// CommentsConfig controls caching of live comment fetches.
type CommentsConfig struct {
	CacheTTL     string        `mapstructure:"cache_ttl"`     // "0" disables the cache
	WarmInterval string        `mapstructure:"warm_interval"` // duration string
	Watch        []WatchConfig `mapstructure:"watch"`
}

// StorageConfig selects the giveaway history backend.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"` // demo, redis, postgres
	DatabaseURL string `mapstructure:"database_url"`
	HistoryCap  int    `mapstructure:"history_cap"`
}

// AuthConfig holds the shared secret for HS256 bearer tokens.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	TokenTTL  string `mapstructure:"token_ttl"`
}

// EventsConfig enables NATS event publishing when URL is set.
type EventsConfig struct {
	NATSURL string `mapstructure:"nats_url"`
}

// OpenAIConfig holds OpenAI settings for hashtag suggestions.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// AnnounceConfig holds Quaily API settings for publishing announcements.
type AnnounceConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Channel   string `mapstructure:"channel"`
	OutputDir string `mapstructure:"output_dir"`
	Title     string `mapstructure:"title"`    // supports {.CurrentDate} and {.Platform}
	Language  string `mapstructure:"language"` // for the AI-written intro
}

// Config is the top-level configuration structure.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Platforms PlatformsConfig `mapstructure:"platforms"`
	Comments  CommentsConfig  `mapstructure:"comments"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Events    EventsConfig    `mapstructure:"events"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Announce  AnnounceConfig  `mapstructure:"announce"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.LogFormat == "" {
		c.App.LogFormat = "text"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	fillPlatform(&c.Platforms.Instagram, "https://graph.facebook.com")
	fillPlatform(&c.Platforms.Facebook, "https://graph.facebook.com")
	fillPlatform(&c.Platforms.YouTube, "https://www.googleapis.com")
	fillPlatform(&c.Platforms.TikTok, "https://open-api.tiktok.com")
	if c.Comments.CacheTTL == "" {
		c.Comments.CacheTTL = "5m"
	}
	if c.Comments.WarmInterval == "" {
		c.Comments.WarmInterval = "2m"
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = "demo"
	}
	if c.Storage.HistoryCap <= 0 {
		c.Storage.HistoryCap = 100
	}
	if c.Auth.TokenTTL == "" {
		c.Auth.TokenTTL = "24h"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Announce.OutputDir == "" {
		c.Announce.OutputDir = "./out"
	}
	if c.Announce.Title == "" {
		c.Announce.Title = "Giveaway winners {.CurrentDate}"
	}
}

func fillPlatform(p *PlatformConfig, baseURL string) {
	p.Credential = strings.TrimSpace(p.Credential)
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	if p.Timeout == "" {
		p.Timeout = "10s"
	}
	if p.RequestsPerSecond <= 0 {
		p.RequestsPerSecond = 5
	}
}
