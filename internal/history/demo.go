package history

import (
	"context"
	"time"

	"giveaway-picker/internal/model"

	"github.com/google/uuid"
)

var nowUTC = func() time.Time { return time.Now().UTC() }

// DemoStore keeps nothing. Save echoes the record back with an id and List
// returns one canned record, so the UI has something to show without a
// database.
type DemoStore struct{}

func NewDemoStore() *DemoStore { return &DemoStore{} }

func (DemoStore) Save(_ context.Context, rec model.GiveawayRecord) (model.GiveawayRecord, error) {
	return prepare(rec, "giveaway_"+uuid.NewString()), nil
}

func (DemoStore) List(_ context.Context, userID string) ([]model.GiveawayRecord, error) {
	now := nowUTC()
	ts := now.Format(time.RFC3339)
	winner := func(pos int, user, text string) model.Winner {
		return model.Winner{Comment: model.Comment{Username: user, Text: text, Timestamp: ts}, Position: pos}
	}
	return []model.GiveawayRecord{{
		ID:          "demo_1",
		UserID:      userID,
		Platform:    "instagram",
		PostURL:     "https://instagram.com/p/demo",
		WinnerCount: 3,
		Winners: []model.Winner{
			winner(1, "winner1", "Great giveaway!"),
			winner(2, "winner2", "Love this!"),
			winner(3, "winner3", "Amazing!"),
		},
		CommentsAnalyzed: 156,
		FiltersApplied:   []string{"spam_filter", "duplicate_filter"},
		CreatedAt:        now,
	}}, nil
}

func (DemoStore) Ping(context.Context) error { return nil }
func (DemoStore) Close() error               { return nil }
