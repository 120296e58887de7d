package history

import (
	"context"
	"encoding/json"
	"fmt"

	"giveaway-picker/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS giveaway_history (
  id                TEXT PRIMARY KEY,
  user_id           TEXT NOT NULL,
  platform          TEXT NOT NULL,
  post_url          TEXT NOT NULL,
  winner_count      INTEGER NOT NULL,
  winners           JSONB NOT NULL,
  comments_analyzed INTEGER NOT NULL,
  filters_applied   JSONB NOT NULL,
  created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS giveaway_history_user_created
  ON giveaway_history (user_id, created_at DESC);`

// PostgresStore is the durable backend.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate giveaway_history: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, rec model.GiveawayRecord) (model.GiveawayRecord, error) {
	rec = prepare(rec, uuid.NewString())
	winners, err := json.Marshal(rec.Winners)
	if err != nil {
		return model.GiveawayRecord{}, err
	}
	filters, err := json.Marshal(rec.FiltersApplied)
	if err != nil {
		return model.GiveawayRecord{}, err
	}
	q := `
INSERT INTO giveaway_history (id, user_id, platform, post_url, winner_count, winners, comments_analyzed, filters_applied, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = s.db.Exec(ctx, q,
		rec.ID, rec.UserID, rec.Platform, rec.PostURL, rec.WinnerCount,
		winners, rec.CommentsAnalyzed, filters, rec.CreatedAt,
	)
	if err != nil {
		return model.GiveawayRecord{}, fmt.Errorf("insert giveaway %s: %w", rec.ID, err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]model.GiveawayRecord, error) {
	q := `SELECT id, user_id, platform, post_url, winner_count, winners, comments_analyzed, filters_applied, created_at
	      FROM giveaway_history WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := s.db.Query(ctx, q, userID, DefaultCap)
	if err != nil {
		return nil, fmt.Errorf("list giveaways: %w", err)
	}
	defer rows.Close()

	out := []model.GiveawayRecord{}
	for rows.Next() {
		var (
			rec              model.GiveawayRecord
			winners, filters []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Platform, &rec.PostURL, &rec.WinnerCount,
			&winners, &rec.CommentsAnalyzed, &filters, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(winners, &rec.Winners); err != nil {
			return nil, fmt.Errorf("decode winners of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(filters, &rec.FiltersApplied); err != nil {
			return nil, fmt.Errorf("decode filters of %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
