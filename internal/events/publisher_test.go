package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return c.err
}

func TestPublishEnvelope(t *testing.T) {
	conn := &recordingConn{}
	New(conn).Publish(SubjectGiveawayDrawn, "giveaway_drawn", "u1", map[string]any{"platform": "tiktok"})

	require.Len(t, conn.payloads, 1)
	assert.Equal(t, SubjectGiveawayDrawn, conn.subjects[0])
	var ev Event
	require.NoError(t, json.Unmarshal(conn.payloads[0], &ev))
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, "tiktok", ev.Properties["platform"])
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestPublishIsNilSafe(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, func() { p.Publish(SubjectCommentsFetched, "x", "", nil) })
	assert.NotPanics(t, func() { New(nil).Publish(SubjectCommentsFetched, "x", "", nil) })
}

func TestPublishSwallowsErrors(t *testing.T) {
	conn := &recordingConn{err: errors.New("disconnected")}
	assert.NotPanics(t, func() { New(conn).Publish(SubjectCommentsFetched, "x", "", nil) })
	assert.Len(t, conn.subjects, 1)
}
