package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"giveaway-picker/internal/ai"
	"giveaway-picker/internal/config"
	"giveaway-picker/internal/events"
	"giveaway-picker/internal/giveaway"
	"giveaway-picker/internal/history"
	"giveaway-picker/internal/platform"
	"giveaway-picker/internal/redisclient"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// app holds the collaborators shared by the commands.
type app struct {
	cfg      config.Config
	service  *platform.Service
	comments giveaway.CommentSource
	cached   *platform.CachedService // nil when the comment cache is off
	store    history.Store
	events   *events.Publisher
	writer   ai.Writer // nil without an OpenAI key

	rdb *redis.Client
	nc  *nats.Conn
}

// newApp builds the collaborators from cfg. Redis and NATS are optional:
// a failed connection is logged and the feature is disabled.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	svc, err := platform.NewServiceFromConfig(cfg.Platforms)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, service: svc, comments: svc}

	ttl, err := time.ParseDuration(cfg.Comments.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid comments.cache_ttl: %w", err)
	}
	if ttl > 0 && (cfg.Redis.URL != "" || cfg.Storage.Backend == "redis") {
		rdb, err := redisclient.New(cfg.Redis)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			slog.Warn("app: redis unavailable, comment cache disabled", "error", err)
			_ = rdb.Close()
		} else {
			a.rdb = rdb
			a.cached = platform.NewCachedService(svc, rdb, ttl)
			a.comments = a.cached
		}
	}

	store, err := history.Open(ctx, cfg.Storage, cfg.Redis)
	if err != nil {
		a.close()
		return nil, err
	}
	a.store = store

	if cfg.Events.NATSURL != "" {
		pub, nc, err := events.Connect(cfg.Events.NATSURL)
		if err != nil {
			slog.Warn("app: nats unavailable, events disabled", "error", err)
		} else {
			a.events, a.nc = pub, nc
		}
	}

	if cfg.OpenAI.APIKey != "" {
		w, err := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		if err != nil {
			slog.Warn("app: openai disabled", "error", err)
		} else {
			a.writer = w
		}
	}
	return a, nil
}

func (a *app) drawer(sel *giveaway.Selector) *giveaway.Drawer {
	d := &giveaway.Drawer{Comments: a.comments, Selector: sel, History: a.store}
	if a.events != nil {
		d.Events = a.events
	}
	return d
}

func (a *app) close() {
	if a.nc != nil {
		_ = a.nc.Drain()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
