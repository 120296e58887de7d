package giveaway

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"giveaway-picker/internal/events"
	"giveaway-picker/internal/model"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInvalidURL          = errors.New("unrecognized post URL for platform")
	ErrInvalidWinnerCount  = errors.New("winner count must be positive")
)

// CommentSource is the retrieval facade the drawer depends on.
type CommentSource interface {
	GetComments(ctx context.Context, platform, postID string) model.RetrievalResult
	ExtractPostID(rawURL, platform string) (string, bool)
	DemoComments(platform string) ([]model.Comment, bool)
	Platforms() []string
}

// HistorySaver persists completed draws.
type HistorySaver interface {
	Save(ctx context.Context, rec model.GiveawayRecord) (model.GiveawayRecord, error)
}

// Publisher receives fire-and-forget domain events.
type Publisher interface {
	Publish(subject, eventName, userID string, props map[string]any)
}

// Request is one winner-selection action.
type Request struct {
	Platform       string `json:"platform"`
	PostURL        string `json:"post_url"`
	WinnerCount    int    `json:"winner_count"`
	FilterKeywords string `json:"filter_keywords,omitempty"`
	// UserID is empty for anonymous draws, which are not persisted.
	UserID string `json:"-"`
}

// Result is what a draw produced.
type Result struct {
	Platform         string                `json:"platform"`
	PostID           string                `json:"post_id"`
	Source           model.Source          `json:"source"`
	FetchError       string                `json:"fetch_error,omitempty"`
	Fetched          int                   `json:"fetched"`
	CommentsAnalyzed int                   `json:"comments_analyzed"`
	Eligible         int                   `json:"eligible"`
	Winners          []model.Winner        `json:"winners"`
	FiltersApplied   []string              `json:"filters_applied"`
	Record           *model.GiveawayRecord `json:"record,omitempty"`
}

// Drawer runs the fetch, filter, draw and persist flow.
type Drawer struct {
	Comments CommentSource
	Selector *Selector
	History  HistorySaver // optional
	Events   Publisher    // optional
}

// Draw fetches comments for req.PostURL, excludes keyword matches and draws
// the winners. A failed fetch is replaced by the platform's demo data and
// reported with Source=fallback. Errors are returned only for invalid input
// or a cancelled context.
func (d *Drawer) Draw(ctx context.Context, req Request) (Result, error) {
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if !slices.Contains(d.Comments.Platforms(), platform) {
		return Result{}, ErrUnsupportedPlatform
	}
	if req.WinnerCount <= 0 {
		return Result{}, ErrInvalidWinnerCount
	}
	postID, ok := d.Comments.ExtractPostID(req.PostURL, platform)
	if !ok {
		return Result{}, ErrInvalidURL
	}

	comments, source, fetchErr := d.fetch(ctx, platform, postID)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	d.publish(events.SubjectCommentsFetched, "comments_fetched", req.UserID, map[string]any{
		"platform": platform,
		"post_id":  postID,
		"source":   string(source),
		"count":    len(comments),
		"error":    fetchErr,
	})

	keywords := ParseKeywords(req.FilterKeywords)
	eligible := Exclude(comments, keywords)
	sel := d.Selector
	if sel == nil {
		sel = NewSelector()
	}
	winners := sel.Select(eligible, req.WinnerCount)

	filters := []string{}
	if len(keywords) > 0 {
		filters = append(filters, model.FilterKeyword)
	}
	res := Result{
		Platform:         platform,
		PostID:           postID,
		Source:           source,
		FetchError:       fetchErr,
		Fetched:          len(comments),
		CommentsAnalyzed: len(eligible),
		Eligible:         len(Unique(eligible)),
		Winners:          winners,
		FiltersApplied:   filters,
	}
	slog.Info("giveaway: winners drawn",
		"platform", platform,
		"post_id", postID,
		"source", source,
		"fetched", res.Fetched,
		"analyzed", res.CommentsAnalyzed,
		"eligible", res.Eligible,
		"winners", len(winners),
	)

	if req.UserID != "" && d.History != nil {
		rec, err := d.History.Save(ctx, model.GiveawayRecord{
			UserID:           req.UserID,
			Platform:         platform,
			PostURL:          req.PostURL,
			WinnerCount:      len(winners),
			Winners:          winners,
			CommentsAnalyzed: res.CommentsAnalyzed,
			FiltersApplied:   filters,
			CreatedAt:        time.Now().UTC(),
		})
		if err != nil {
			slog.Error("giveaway: save history failed", "user_id", req.UserID, "platform", platform, "error", err)
		} else {
			res.Record = &rec
		}
	}

	d.publish(events.SubjectGiveawayDrawn, "giveaway_drawn", req.UserID, map[string]any{
		"platform":  platform,
		"source":    string(source),
		"fetched":   res.Fetched,
		"analyzed":  res.CommentsAnalyzed,
		"eligible":  res.Eligible,
		"winners":   len(winners),
		"requested": req.WinnerCount,
		"filters":   filters,
	})
	return res, nil
}

func (d *Drawer) fetch(ctx context.Context, platform, postID string) ([]model.Comment, model.Source, string) {
	res := d.Comments.GetComments(ctx, platform, postID)
	if res.Success {
		return res.Data, res.Source, ""
	}
	demo, _ := d.Comments.DemoComments(platform)
	slog.Warn("giveaway: retrieval failed, serving demo data",
		"platform", platform,
		"post_id", postID,
		"source", model.SourceFallback,
		"error", res.Error,
	)
	return demo, model.SourceFallback, res.Error
}

func (d *Drawer) publish(subject, name, userID string, props map[string]any) {
	if d.Events == nil {
		return
	}
	d.Events.Publish(subject, name, userID, props)
}
