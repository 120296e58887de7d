package worker

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"giveaway-picker/internal/config"
	"giveaway-picker/internal/model"
)

// Refresher refetches a post's comments and stores them in the cache.
type Refresher interface {
	Refresh(ctx context.Context, platform, postID string) model.RetrievalResult
	ExtractPostID(rawURL, platform string) (string, bool)
	DemoMode(platform string) bool
}

// CacheWarmer keeps comments of watched posts fresh so draws on hot
// giveaways are served from cache.
type CacheWarmer struct {
	Comments Refresher
	Watch    []config.WatchConfig
	Interval time.Duration
}

func (w *CacheWarmer) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 2 * time.Minute
	}

	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *CacheWarmer) runOnce(ctx context.Context) {
	warmed := 0
	for _, entry := range w.Watch {
		if ctx.Err() != nil {
			return
		}
		platform := strings.ToLower(strings.TrimSpace(entry.Platform))
		if w.Comments.DemoMode(platform) {
			continue
		}
		postID, ok := w.Comments.ExtractPostID(entry.URL, platform)
		if !ok {
			slog.Warn("cache-warmer: unrecognized url", "platform", platform, "url", entry.URL)
			continue
		}
		res := w.Comments.Refresh(ctx, platform, postID)
		if !res.Success {
			slog.Error("cache-warmer: refresh error", "platform", platform, "post_id", postID, "error", res.Error)
			continue
		}
		warmed++
		if res.RateLimitRemaining != nil && *res.RateLimitRemaining < 10 {
			slog.Warn("cache-warmer: rate limit nearly exhausted", "platform", platform, "remaining", *res.RateLimitRemaining)
		}
	}
	slog.Info("cache-warmer: completed", "watched", len(w.Watch), "warmed", warmed)
}
