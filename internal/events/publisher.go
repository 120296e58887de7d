// Package events publishes fire-and-forget domain events to NATS.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectCommentsFetched = "comments.fetched"
	SubjectGiveawayDrawn   = "giveaway.drawn"
)

// Event is the envelope sent on every subject.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	UserID     string         `json:"user_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher is safe to use as a nil pointer; it then does nothing.
type Publisher struct {
	conn Conn
}

// New wraps an existing connection. A nil conn yields a no-op publisher.
func New(conn Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Connect dials NATS at url and returns a publisher plus the connection so
// the caller can drain it on shutdown.
func Connect(url string) (*Publisher, *nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("giveaway-picker"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return New(nc), nc, nil
}

// Publish sends an event. Failures are logged and never surface to the caller.
func (p *Publisher) Publish(subject, eventName, userID string, props map[string]any) {
	if p == nil || p.conn == nil {
		return
	}
	ev := Event{
		EventID:    uuid.NewString(),
		EventName:  eventName,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Properties: props,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("events: marshal failed", "event", eventName, "error", err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		slog.Warn("events: publish failed", "subject", subject, "error", err)
	}
}
