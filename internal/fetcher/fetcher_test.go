package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.csv" {
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "catkw")
		w.Write([]byte("Categories_IT\nArmi|Fucili\n"))
	}))
	defer srv.Close()

	body, err := Fetch(context.Background(), srv.URL+"/feed.csv")
	require.NoError(t, err)
	assert.Equal(t, "Categories_IT\nArmi|Fucili\n", string(body))

	_, err = Fetch(context.Background(), srv.URL+"/missing.csv")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestFetchRejectsScheme(t *testing.T) {
	_, err := Fetch(context.Background(), "ftp://example.com/feed.csv")
	assert.ErrorContains(t, err, "unsupported scheme")
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL(" https://example.com/feed.csv"))
	assert.True(t, IsURL("www.example.com"))
	assert.False(t, IsURL("feed.csv"))
}
