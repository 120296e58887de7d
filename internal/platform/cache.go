package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"giveaway-picker/internal/model"

	"github.com/redis/go-redis/v9"
)

// CachedService keeps successful live fetches in Redis for a TTL. Demo and
// failed results always go straight through.
type CachedService struct {
	*Service
	rdb *redis.Client
	ttl time.Duration
}

// NewCachedService wraps svc. A non-positive ttl disables caching.
func NewCachedService(svc *Service, rdb *redis.Client, ttl time.Duration) *CachedService {
	return &CachedService{Service: svc, rdb: rdb, ttl: ttl}
}

func commentsKey(platform, postID string) string {
	return fmt.Sprintf("comments:%s:%s", strings.ToLower(platform), postID)
}

// GetComments serves from cache when possible.
func (c *CachedService) GetComments(ctx context.Context, platform, postID string) model.RetrievalResult {
	if !c.enabled() || c.Service.DemoMode(platform) {
		return c.Service.GetComments(ctx, platform, postID)
	}
	b, err := c.rdb.Get(ctx, commentsKey(platform, postID)).Bytes()
	switch {
	case err == nil:
		var res model.RetrievalResult
		if err := json.Unmarshal(b, &res); err == nil {
			slog.Debug("comments-cache: hit", "platform", platform, "post_id", postID)
			return res
		}
	case err != redis.Nil:
		slog.Warn("comments-cache: read error", "platform", platform, "error", err)
	}
	return c.Refresh(ctx, platform, postID)
}

// Refresh fetches from the platform and stores a successful live result.
func (c *CachedService) Refresh(ctx context.Context, platform, postID string) model.RetrievalResult {
	res := c.Service.GetComments(ctx, platform, postID)
	if !c.enabled() || !res.Success || res.Source != model.SourceLive {
		return res
	}
	b, err := json.Marshal(res)
	if err != nil {
		return res
	}
	if err := c.rdb.Set(ctx, commentsKey(platform, postID), b, c.ttl).Err(); err != nil {
		slog.Warn("comments-cache: write error", "platform", platform, "error", err)
	}
	return res
}

func (c *CachedService) enabled() bool {
	return c.rdb != nil && c.ttl > 0
}
