package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyreaper/keyreaper/internal/types"
)

func TestGetNormalizesResponse(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc.def.ghi"})
		w.Header().Set("X-Powered-By", "Express")
		w.Write([]byte("<html>body</html>"))
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), srv.URL, Options{NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", resp.Cookies["session"])
	assert.Equal(t, "Express", resp.Headers["X-Powered-By"])
	assert.Equal(t, "<html>body</html>", resp.Body)
}

func TestGetSendsUserAgent(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := Get(context.Background(), srv.URL, Options{NoCache: true, UserAgent: "keyreaper-test"})
	require.NoError(t, err)
	assert.Equal(t, "keyreaper-test", gotUA)
}

func TestGetConnectionError(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	_, err := Get(context.Background(), "http://127.0.0.1:1", Options{NoCache: true, Timeout: 2 * time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error connecting to URL")
}

func TestResponseCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	now := time.Now()
	want := &types.Response{
		Headers: map[string]string{"Server": "nginx"},
		Cookies: map[string]string{"sid": "x"},
		Body:    "hello",
	}
	storeResponse("http://example.test/", want, now)

	got, ok := cachedResponse("http://example.test/", now)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// Expired entries are misses.
	_, ok = cachedResponse("http://example.test/", now.Add(cacheTTL+time.Minute))
	assert.False(t, ok)

	// Different URLs do not collide.
	_, ok = cachedResponse("http://other.test/", now)
	assert.False(t, ok)
}

func TestCacheServesSecondFetch(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("cached"))
	}))
	defer srv.Close()

	_, err := Get(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	_, err = Get(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}
