package giveaway

import (
	"strings"

	"giveaway-picker/internal/model"
)

// ParseKeywords splits a comma-separated keyword list, trimming and
// lowercasing each entry. Empty entries are dropped.
func ParseKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Exclude drops every comment whose text or username contains one of the
// keywords (case-insensitive substring match). Keywords are expected in the
// form ParseKeywords returns.
func Exclude(comments []model.Comment, keywords []string) []model.Comment {
	if len(keywords) == 0 {
		out := make([]model.Comment, len(comments))
		copy(out, comments)
		return out
	}
	out := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if !matchesAny(c, keywords) {
			out = append(out, c)
		}
	}
	return out
}

func matchesAny(c model.Comment, keywords []string) bool {
	text := strings.ToLower(c.Text)
	user := strings.ToLower(c.Username)
	for _, k := range keywords {
		if strings.Contains(text, k) || strings.Contains(user, k) {
			return true
		}
	}
	return false
}

// Unique keeps the first comment per id and per username so one entrant can
// never win twice. Empty ids and usernames are not used as keys.
func Unique(comments []model.Comment) []model.Comment {
	seenID := make(map[string]struct{}, len(comments))
	seenUser := make(map[string]struct{}, len(comments))
	out := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if _, ok := seenID[c.ID]; ok && c.ID != "" {
			continue
		}
		if _, ok := seenUser[c.Username]; ok && c.Username != "" {
			continue
		}
		if c.ID != "" {
			seenID[c.ID] = struct{}{}
		}
		if c.Username != "" {
			seenUser[c.Username] = struct{}{}
		}
		out = append(out, c)
	}
	return out
}
