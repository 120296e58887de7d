// Package hashtag builds hashtag sets for short-video posts from a static
// niche database, optionally topped up with AI suggestions.
package hashtag

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

const DefaultCount = 20

var database = map[string][]string{
	"general":   {"#fyp", "#foryou", "#viral", "#trending", "#tiktokmademebuyit", "#vibes", "#mood", "#aesthetic"},
	"dance":     {"#dance", "#dancechallenge", "#choreography", "#dancer", "#dancing", "#dancevideo", "#moves", "#rhythm"},
	"comedy":    {"#funny", "#comedy", "#humor", "#laugh", "#joke", "#meme", "#hilarious", "#entertainment"},
	"beauty":    {"#beauty", "#makeup", "#skincare", "#beautytips", "#makeuptutorial", "#glowup", "#beautyhacks", "#selfcare"},
	"food":      {"#food", "#cooking", "#recipe", "#foodie", "#delicious", "#homemade", "#chef", "#foodhacks"},
	"fitness":   {"#fitness", "#workout", "#gym", "#health", "#exercise", "#fitnessmotivation", "#cardio", "#strength"},
	"education": {"#education", "#learning", "#study", "#knowledge", "#facts", "#science", "#history", "#tips"},
	"tech":      {"#tech", "#technology", "#gadgets", "#innovation", "#coding", "#ai", "#programming", "#digital"},
	"music":     {"#music", "#song", "#singing", "#musician", "#cover", "#original", "#beats", "#melody"},
	"lifestyle": {"#lifestyle", "#daily", "#routine", "#selfcare", "#motivation", "#inspiration", "#goals", "#mindset"},
	"travel":    {"#travel", "#adventure", "#explore", "#wanderlust", "#vacation", "#trip", "#nature", "#beautiful"},
}

var (
	popular  = []string{"#fyp", "#foryou", "#viral", "#trending", "#tiktok", "#love", "#follow", "#like", "#share", "#comment"}
	trending = []string{"#trending2024", "#viral", "#fypage", "#tiktokviral", "#explore"}
)

// Niches lists the known niches, sorted.
func Niches() []string {
	out := make([]string, 0, len(database))
	for k := range database {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Suggester proposes hashtags for a description. Implemented by ai.OpenAIClient.
type Suggester interface {
	SuggestHashtags(ctx context.Context, description, niche string, n int) ([]string, error)
}

type Options struct {
	Niche           string `json:"niche"`
	Description     string `json:"description,omitempty"`
	Count           int    `json:"count"`
	IncludeNiche    bool   `json:"include_niche"`
	IncludePopular  bool   `json:"include_popular"`
	IncludeTrending bool   `json:"include_trending"`
	UseAI           bool   `json:"use_ai"`
}

// Stat is a coarse popularity label per tag.
type Stat struct {
	Hashtag    string `json:"hashtag"`
	Popularity string `json:"popularity"`
}

type Result struct {
	Hashtags []string `json:"hashtags"`
	Stats    []Stat   `json:"stats"`
	AI       bool     `json:"ai"`
}

// Generator assembles hashtag sets. AI is optional.
type Generator struct {
	AI Suggester
}

// Generate returns at most opts.Count unique hashtags. Niche tags come
// first, then the general set, popular and trending ones. AI suggestions,
// when requested and available, are placed in front. An AI failure falls
// back to the static list.
func (g *Generator) Generate(ctx context.Context, opts Options) Result {
	count := opts.Count
	if count <= 0 {
		count = DefaultCount
	}
	niche := strings.ToLower(strings.TrimSpace(opts.Niche))
	if _, ok := database[niche]; !ok {
		niche = "general"
	}

	var tags []string
	usedAI := false
	if opts.UseAI && g.AI != nil {
		suggested, err := g.AI.SuggestHashtags(ctx, opts.Description, niche, count)
		if err != nil {
			slog.Warn("hashtag: ai suggestions failed, using static list", "niche", niche, "error", err)
		} else if len(suggested) > 0 {
			tags = append(tags, suggested...)
			usedAI = true
		}
	}
	if opts.IncludeNiche && niche != "general" {
		tags = append(tags, database[niche]...)
	}
	tags = append(tags, database["general"]...)
	if opts.IncludePopular {
		tags = append(tags, popular...)
	}
	if opts.IncludeTrending {
		tags = append(tags, trending...)
	}

	tags = dedupe(tags)
	if len(tags) > count {
		tags = tags[:count]
	}
	stats := make([]Stat, len(tags))
	for i, t := range tags {
		stats[i] = Stat{Hashtag: t, Popularity: popularity(t)}
	}
	return Result{Hashtags: tags, Stats: stats, AI: usedAI}
}

func popularity(tag string) string {
	if slices.Contains(popular, tag) || slices.Contains(trending, tag) {
		return "High"
	}
	return "Medium"
}

// dedupe keeps the first occurrence of each tag, preserving order.
func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
