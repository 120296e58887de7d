package redisclient

import (
	"testing"

	"giveaway-picker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrefersURL(t *testing.T) {
	rdb, err := New(config.RedisConfig{URL: "redis://user:pw@cache:6380/2", Addr: "ignored:1"})
	require.NoError(t, err)
	defer rdb.Close()
	opts := rdb.Options()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "user", opts.Username)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestNewFromFields(t *testing.T) {
	rdb, err := New(config.RedisConfig{Addr: "127.0.0.1:6379", DB: 1})
	require.NoError(t, err)
	defer rdb.Close()
	assert.Equal(t, "127.0.0.1:6379", rdb.Options().Addr)
	assert.Equal(t, 1, rdb.Options().DB)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}
