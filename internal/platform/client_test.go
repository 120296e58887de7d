package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"giveaway-picker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, platform, baseURL, credential string) *Client {
	t.Helper()
	d, ok := Lookup(platform)
	require.True(t, ok)
	return NewClient(d, Options{Credential: credential, BaseURL: baseURL, RequestsPerSecond: 1000})
}

func TestDemoModeSkipsNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	for _, name := range Names() {
		d, _ := Lookup(name)
		for _, cred := range []string{"", d.DemoCredential} {
			c := testClient(t, name, srv.URL, cred)
			require.True(t, c.DemoMode())

			first := c.FetchComments(context.Background(), "123")
			second := c.FetchComments(context.Background(), "123")
			assert.True(t, first.Success)
			assert.Equal(t, model.SourceDemo, first.Source)
			assert.NotEmpty(t, first.Data)
			assert.Equal(t, first, second, "demo data is deterministic")
		}
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestDemoDataIsCopied(t *testing.T) {
	c := testClient(t, "facebook", "", "")
	res := c.FetchComments(context.Background(), "1")
	res.Data[0].Username = "mutated"
	again := c.FetchComments(context.Background(), "1")
	assert.Equal(t, "Maria Rodriguez", again.Data[0].Username)
}

func TestFetchInstagramLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v18.0/POST1/comments", r.URL.Path)
		assert.Equal(t, "real-token", r.URL.Query().Get("access_token"))
		w.Header().Set("X-App-Usage", `{"call_count":28,"total_cputime":25,"total_time":30}`)
		fmt.Fprint(w, `{"data":[
			{"id":"1","username":"a","text":"hello","timestamp":"t1","like_count":3},
			"garbage",
			{"id":"3","user":{"username":"c","verified":true}}
		]}`)
	}))
	defer srv.Close()

	res := testClient(t, "instagram", srv.URL, "real-token").FetchComments(context.Background(), "POST1")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, model.SourceLive, res.Source)
	require.Len(t, res.Data, 3, "a malformed item is defaulted, not dropped")
	assert.Equal(t, "a", res.Data[0].Username)
	assert.Equal(t, "unknown", res.Data[1].Username)
	assert.True(t, res.Data[2].Verified)
	require.NotNil(t, res.RateLimitRemaining)
	assert.Equal(t, 70, *res.RateLimitRemaining)
}

func TestFetchTikTokSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tt-token", r.Header.Get("Authorization"))
		assert.Equal(t, "987", r.URL.Query().Get("video_id"))
		w.Header().Set("X-RateLimit-Remaining", "42")
		fmt.Fprint(w, `{"data":{"comments":[{"id":1,"text":"wow","create_time":1700000000,"like_count":5,"user":{"display_name":"z"}}]},"error":{"code":"ok","message":""}}`)
	}))
	defer srv.Close()

	res := testClient(t, "tiktok", srv.URL, "tt-token").FetchComments(context.Background(), "987")
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "1", res.Data[0].ID)
	assert.Equal(t, "2023-11-14T22:13:20Z", res.Data[0].Timestamp)
	assert.Equal(t, 42, *res.RateLimitRemaining)
}

func TestFetchCapsAtMaxComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/commentThreads", r.URL.Path)
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "vid", r.URL.Query().Get("videoId"))
		assert.Equal(t, "100", r.URL.Query().Get("maxResults"))
		items := make([]string, 150)
		for i := range items {
			items[i] = fmt.Sprintf(`{"id":"%d"}`, i)
		}
		fmt.Fprintf(w, `{"items":[%s]}`, strings.Join(items, ","))
	}))
	defer srv.Close()

	res := testClient(t, "youtube", srv.URL, "yt-key").FetchComments(context.Background(), "vid")
	require.True(t, res.Success)
	assert.Len(t, res.Data, MaxComments)
	assert.Nil(t, res.RateLimitRemaining)
}

func TestFetchFailuresNeverPanic(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()
	badJSON := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer badJSON.Close()
	apiErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"Invalid OAuth access token."}}`)
	}))
	defer apiErr.Close()
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closed.Close()

	cases := map[string]string{
		"status":    failing.URL,
		"json":      badJSON.URL,
		"api error": apiErr.URL,
		"transport": closed.URL,
	}
	for name, url := range cases {
		t.Run(name, func(t *testing.T) {
			res := testClient(t, "facebook", url, "real").FetchComments(context.Background(), "p1")
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
			assert.NotNil(t, res.Data)
			assert.Empty(t, res.Data)
		})
	}
}

func TestFetchHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := testClient(t, "youtube", "http://127.0.0.1:1", "key")
	res := c.FetchComments(ctx, "vid")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestFetchErrorsDoNotExposeCredential(t *testing.T) {
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closed.Close()

	const secret = "SUPER-SECRET-TOKEN"
	for _, name := range []string{"instagram", "facebook", "youtube", "tiktok"} {
		t.Run(name, func(t *testing.T) {
			res := testClient(t, name, closed.URL, secret).FetchComments(context.Background(), "p1")
			require.False(t, res.Success)
			assert.NotContains(t, res.Error, secret)
			assert.Contains(t, res.Error, name+": Get")
		})
	}

	res := testClient(t, "youtube", "http://bad host\\x", secret).FetchComments(context.Background(), "p1")
	assert.False(t, res.Success)
	assert.NotContains(t, res.Error, secret)
}
