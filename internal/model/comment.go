package model

// Comment is the canonical shape every platform payload is normalized into.
// ID is unique within a platform+post, not globally.
type Comment struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp string    `json:"timestamp"`
	Likes     int       `json:"likes"`
	Verified  bool      `json:"verified"`
	Replies   []Comment `json:"replies,omitempty"`
}

// Winner is a drawn comment. Position is draw order (1-based), not a score.
type Winner struct {
	Comment
	Position int `json:"position"`
}

// Source tells where the comments of a RetrievalResult came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceDemo     Source = "demo"
	SourceFallback Source = "fallback"
)

// RetrievalResult is returned by every platform client instead of an error.
// On failure Success is false, Error is non-empty and Data is empty.
type RetrievalResult struct {
	Success            bool      `json:"success"`
	Data               []Comment `json:"data"`
	Error              string    `json:"error,omitempty"`
	RateLimitRemaining *int      `json:"rateLimitRemaining,omitempty"`
	Source             Source    `json:"source,omitempty"`
}

// Failed builds the error-channel result.
func Failed(msg string) RetrievalResult {
	if msg == "" {
		msg = "unknown error"
	}
	return RetrievalResult{Success: false, Error: msg, Data: []Comment{}}
}
