package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, TimeoutSeconds: 2})
}

func TestResolve(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/info", r.URL.Path)
		assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", r.URL.Query().Get("url"))
		w.Write([]byte(`{"id":"dQw4w9WgXcQ","title":"Never Gonna Give You Up","uploader":"Rick Astley","duration":212,"view_count":1000000}`))
	}))

	meta, err := c.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", meta.Title)
	assert.Equal(t, "Rick Astley", meta.Uploader)
	assert.Equal(t, 212, meta.DurationSeconds)
}

func TestResolveUnavailable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.Resolve(context.Background(), "https://youtu.be/private0001")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolveMalformed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	_, err := c.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestResolveStream(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stream", r.URL.Path)
		assert.Equal(t, "best[height<=720]", r.URL.Query().Get("format"))
		w.Write([]byte(`{"url":"https://cdn.example/stream.mp4","title":"clip","ext":"mp4","filesize_approx":1048576}`))
	}))

	s, err := c.ResolveStream(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "best[height<=720]")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/stream.mp4", s.URL)
	assert.Equal(t, int64(1048576), s.SizeBytes)
}

func TestResolveStreamEmptyReference(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"","title":"clip"}`))
	}))

	_, err := c.ResolveStream(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "best")
	assert.ErrorIs(t, err, ErrNoStream)
}

func TestExpandPlaylistTruncates(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/playlist", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("flat"))
		w.Write([]byte(`{"title":"Mix","total":25,"entries":[
			{"title":"a","url":"u1"},{"title":"b","url":"u2"},{"title":"c","url":"u3"},
			{"title":"d","url":"u4"},{"title":"e","url":"u5"},{"title":"f","url":"u6"},
			{"title":"g","url":"u7"},{"title":"h","url":"u8"},{"title":"i","url":"u9"},
			{"title":"j","url":"u10"},{"title":"k","url":"u11"},{"title":"l","url":"u12"}]}`))
	}))

	pl, err := c.ExpandPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL1", 10)
	require.NoError(t, err)
	assert.Len(t, pl.Entries, 10)
	assert.Equal(t, 25, pl.Total)
}

func TestSearchReturnsEmptyOnFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	entries := c.Search(context.Background(), "lofi", 5)
	assert.Empty(t, entries)
}

func TestSearchLimit(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"entries":[
			{"id":"a","title":"1"},{"id":"b","title":"2"},{"id":"c","title":"3"},
			{"id":"d","title":"4"},{"id":"e","title":"5"},{"id":"f","title":"6"}]}`))
	}))

	entries := c.Search(context.Background(), "lofi", 9)
	assert.Len(t, entries, 5)
}
