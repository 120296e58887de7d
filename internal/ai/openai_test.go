package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"giveaway-picker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOpenAI(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseHashtags(t *testing.T) {
	got := ParseHashtags("#Dance, #fyp #dance\nnot-a-tag #  \"#viral\".")
	assert.Equal(t, []string{"#dance", "#fyp", "#viral"}, got)
}

func TestNewOpenAIValidation(t *testing.T) {
	_, err := NewOpenAI(Config{Model: "m"})
	assert.Error(t, err)
	_, err = NewOpenAI(Config{APIKey: "k"})
	assert.Error(t, err)
}

func TestSuggestHashtags(t *testing.T) {
	srv := fakeOpenAI(t, "#pasta #cooking #Recipe #dinner")
	c, err := NewOpenAI(Config{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL})
	require.NoError(t, err)

	tags, err := c.SuggestHashtags(context.Background(), "Cooking pasta", "food", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"#pasta", "#cooking", "#recipe"}, tags)
}

func TestWriteAnnouncement(t *testing.T) {
	srv := fakeOpenAI(t, "  Congrats @ana!  ")
	c, err := NewOpenAI(Config{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := c.WriteAnnouncement(context.Background(), model.GiveawayRecord{
		Platform: "instagram",
		Winners:  []model.Winner{{Comment: model.Comment{Username: "ana"}, Position: 1}},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Congrats @ana!", out)

	empty, err := c.WriteAnnouncement(context.Background(), model.GiveawayRecord{}, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
