package giveaway

import (
	"context"
	"errors"
	"testing"

	"giveaway-picker/internal/events"
	"giveaway-picker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	result model.RetrievalResult
	demo   []model.Comment
	calls  int
}

func (f *fakeSource) GetComments(ctx context.Context, platform, postID string) model.RetrievalResult {
	f.calls++
	return f.result
}

func (f *fakeSource) ExtractPostID(rawURL, platform string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	return "post-1", true
}

func (f *fakeSource) DemoComments(platform string) ([]model.Comment, bool) {
	return append([]model.Comment(nil), f.demo...), true
}

func (f *fakeSource) Platforms() []string {
	return []string{"facebook", "instagram", "tiktok", "youtube"}
}

type fakeSaver struct {
	saved []model.GiveawayRecord
	err   error
}

func (f *fakeSaver) Save(ctx context.Context, rec model.GiveawayRecord) (model.GiveawayRecord, error) {
	if f.err != nil {
		return model.GiveawayRecord{}, f.err
	}
	rec.ID = "rec-1"
	f.saved = append(f.saved, rec)
	return rec, nil
}

type fakePublisher struct{ subjects []string }

func (f *fakePublisher) Publish(subject, eventName, userID string, props map[string]any) {
	f.subjects = append(f.subjects, subject)
}

func live(comments []model.Comment) model.RetrievalResult {
	return model.RetrievalResult{Success: true, Data: comments, Source: model.SourceLive}
}

func TestDrawHappyPath(t *testing.T) {
	src := &fakeSource{result: live(entrants(8))}
	saver := &fakeSaver{}
	pub := &fakePublisher{}
	d := &Drawer{Comments: src, Selector: NewSeededSelector(3), History: saver, Events: pub}

	res, err := d.Draw(context.Background(), Request{Platform: "Instagram", PostURL: "https://instagram.com/p/x", WinnerCount: 3, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "instagram", res.Platform)
	assert.Equal(t, model.SourceLive, res.Source)
	assert.Equal(t, 8, res.CommentsAnalyzed)
	assert.Len(t, res.Winners, 3)
	assert.Empty(t, res.FiltersApplied)
	require.NotNil(t, res.Record)
	assert.Equal(t, "rec-1", res.Record.ID)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, 3, saver.saved[0].WinnerCount)
	assert.Equal(t, []string{events.SubjectCommentsFetched, events.SubjectGiveawayDrawn}, pub.subjects)
}

func TestDrawFewerEligibleThanRequested(t *testing.T) {
	d := &Drawer{Comments: &fakeSource{result: live(entrants(2))}}
	res, err := d.Draw(context.Background(), Request{Platform: "tiktok", PostURL: "u", WinnerCount: 5})
	require.NoError(t, err)
	assert.Len(t, res.Winners, 2)
	assert.Nil(t, res.Record, "anonymous draws are not persisted")
}

func TestDrawExcludesKeywords(t *testing.T) {
	comments := []model.Comment{
		{ID: "1", Username: "spam_account", Text: "hi"},
		{ID: "2", Username: "alice", Text: "free SPAM here"},
		{ID: "3", Username: "bob", Text: "love it"},
	}
	d := &Drawer{Comments: &fakeSource{result: live(comments)}}
	res, err := d.Draw(context.Background(), Request{Platform: "youtube", PostURL: "u", WinnerCount: 3, FilterKeywords: "spam"})
	require.NoError(t, err)
	require.Len(t, res.Winners, 1)
	assert.Equal(t, "bob", res.Winners[0].Username)
	assert.Equal(t, 1, res.Eligible)
	assert.Equal(t, 3, res.Fetched)
	assert.Equal(t, 1, res.CommentsAnalyzed, "analyzed counts comments left after filtering")
	assert.Equal(t, []string{model.FilterKeyword}, res.FiltersApplied)
}

func TestDrawFallsBackToDemoData(t *testing.T) {
	src := &fakeSource{
		result: model.Failed("facebook API error: 500"),
		demo:   entrants(2),
	}
	d := &Drawer{Comments: src}
	res, err := d.Draw(context.Background(), Request{Platform: "facebook", PostURL: "u", WinnerCount: 1})
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, res.Source)
	assert.Equal(t, "facebook API error: 500", res.FetchError)
	assert.Equal(t, 2, res.CommentsAnalyzed)
	assert.Len(t, res.Winners, 1)
}

func TestDrawSaveFailureIsNotFatal(t *testing.T) {
	d := &Drawer{Comments: &fakeSource{result: live(entrants(3))}, History: &fakeSaver{err: errors.New("db down")}}
	res, err := d.Draw(context.Background(), Request{Platform: "facebook", PostURL: "u", WinnerCount: 1, UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, res.Winners, 1)
	assert.Nil(t, res.Record)
}

func TestDrawValidation(t *testing.T) {
	src := &fakeSource{result: live(entrants(3))}
	d := &Drawer{Comments: src}
	ctx := context.Background()

	_, err := d.Draw(ctx, Request{Platform: "myspace", PostURL: "u", WinnerCount: 1})
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	_, err = d.Draw(ctx, Request{Platform: "tiktok", PostURL: "u", WinnerCount: 0})
	assert.ErrorIs(t, err, ErrInvalidWinnerCount)
	_, err = d.Draw(ctx, Request{Platform: "tiktok", PostURL: "", WinnerCount: 1})
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Zero(t, src.calls)
}

func TestDrawCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &Drawer{Comments: &fakeSource{result: live(entrants(3))}}
	_, err := d.Draw(ctx, Request{Platform: "tiktok", PostURL: "u", WinnerCount: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
