// Package history persists completed giveaway draws per user.
package history

import (
	"context"
	"fmt"
	"strings"

	"giveaway-picker/internal/config"
	"giveaway-picker/internal/model"
	"giveaway-picker/internal/redisclient"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store saves and lists giveaway records.
type Store interface {
	Save(ctx context.Context, rec model.GiveawayRecord) (model.GiveawayRecord, error)
	List(ctx context.Context, userID string) ([]model.GiveawayRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig, rcfg config.RedisConfig) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "demo":
		return NewDemoStore(), nil
	case "redis":
		rdb, err := redisclient.New(rcfg)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb, cfg.HistoryCap), nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("storage.database_url is required for the postgres backend")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		s := NewPostgresStore(pool)
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// prepare fills the fields every backend assigns on save.
func prepare(rec model.GiveawayRecord, id string) model.GiveawayRecord {
	rec.ID = id
	if rec.Platform == "" {
		rec.Platform = "instagram"
	}
	if rec.WinnerCount <= 0 {
		rec.WinnerCount = len(rec.Winners)
	}
	if rec.Winners == nil {
		rec.Winners = []model.Winner{}
	}
	if rec.FiltersApplied == nil {
		rec.FiltersApplied = []string{}
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = nowUTC()
	}
	return rec
}
