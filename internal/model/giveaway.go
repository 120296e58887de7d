package model

import "time"

// FilterKeyword is recorded in FiltersApplied when keyword exclusion ran.
const FilterKeyword = "keyword_filter"

// GiveawayRecord is one completed draw by a signed-in user. Never mutated
// after creation.
type GiveawayRecord struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Platform         string    `json:"platform"`
	PostURL          string    `json:"post_url"`
	WinnerCount      int       `json:"winner_count"`
	Winners          []Winner  `json:"winners"`
	CommentsAnalyzed int       `json:"comments_analyzed"`
	FiltersApplied   []string  `json:"filters_applied"`
	CreatedAt        time.Time `json:"created_at"`
}
