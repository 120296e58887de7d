package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"giveaway-picker/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedServiceCachesLiveResults(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"data":[{"id":"1","message":"hi","from":{"name":"Ana"}}]}`)
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	svc := NewService(testClient(t, "facebook", srv.URL, "real"))
	cached := NewCachedService(svc, rdb, time.Minute)

	first := cached.GetComments(context.Background(), "facebook", "p1")
	second := cached.GetComments(context.Background(), "facebook", "p1")
	require.True(t, first.Success)
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, mr.Exists("comments:facebook:p1"))

	cached.Refresh(context.Background(), "facebook", "p1")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCachedServiceSkipsFailuresAndDemo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	svc := NewService(testClient(t, "facebook", srv.URL, "real"), testClient(t, "tiktok", "", ""))
	cached := NewCachedService(svc, rdb, time.Minute)

	res := cached.GetComments(context.Background(), "facebook", "p1")
	assert.False(t, res.Success)
	demo := cached.GetComments(context.Background(), "tiktok", "1")
	assert.Equal(t, model.SourceDemo, demo.Source)
	assert.Empty(t, mr.Keys())
}
