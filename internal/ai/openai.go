package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"giveaway-picker/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Writer defines the AI helpers used by the hashtag generator and the
// announcement renderer.
type Writer interface {
	// SuggestHashtags returns up to n hashtags for a video description in a niche.
	SuggestHashtags(ctx context.Context, description, niche string, n int) ([]string, error)
	// WriteAnnouncement returns a short paragraph congratulating the winners.
	WriteAnnouncement(ctx context.Context, rec model.GiveawayRecord, language string) (string, error)
}

// OpenAIClient implements Writer using the Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai api key is empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai model must be specified")
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cc), model: cfg.Model}, nil
}

func (o *OpenAIClient) SuggestHashtags(ctx context.Context, description, niche string, n int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if n <= 0 {
		return nil, nil
	}
	description = strings.TrimSpace(description)
	if len([]rune(description)) > 500 {
		description = string([]rune(description)[:500])
	}
	sys := fmt.Sprintf(`
		You suggest TikTok hashtags. Return at most %d hashtags, space separated, each starting with #.
		Lowercase, no punctuation inside a tag, no explanations.
		`, n)
	user := fmt.Sprintf("Niche: %s\nVideo description: %s", niche, description)
	out, err := o.create(ctx, sys, user, 0.7)
	if err != nil {
		slog.Error("openai: suggest hashtags error", "err", err)
		return nil, err
	}
	tags := ParseHashtags(out)
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags, nil
}

func (o *OpenAIClient) WriteAnnouncement(ctx context.Context, rec model.GiveawayRecord, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	if len(rec.Winners) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, w := range rec.Winners {
		if i >= 10 {
			break
		}
		fmt.Fprintf(b, "%d. @%s\n", w.Position, w.Username)
	}
	sys := fmt.Sprintf(`
		Write in %s, 2 to 3 sentences, congratulating giveaway winners.
		Be warm and fun. Do not invent prizes or links.
		`, langOrDefault(language))
	user := fmt.Sprintf("Platform: %s\nComments analyzed: %d\nWinners:\n%s", rec.Platform, rec.CommentsAnalyzed, b.String())
	out, err := o.create(ctx, sys, user, 0.4)
	if err != nil {
		slog.Error("openai: write announcement error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string, temperature float32) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// ParseHashtags extracts #tags from free text, lowercased, in order of
// first appearance.
func ParseHashtags(s string) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	}) {
		f = strings.ToLower(strings.Trim(f, ".;:\"'`"))
		if !strings.HasPrefix(f, "#") || len(f) < 2 || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "English"
	}
	return l
}
