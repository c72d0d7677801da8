package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/clipfetch/clipfetch/internal/extractor"
)

// botRecorder captures every Bot API call an offline bot makes, so the
// handlers under test run against the real telebot send/edit machinery.
type botRecorder struct {
	mu    sync.Mutex
	calls []apiCall
}

type apiCall struct {
	method string
	body   string
}

func (r *botRecorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		method := req.URL.Path[strings.LastIndex(req.URL.Path, "/")+1:]
		r.mu.Lock()
		r.calls = append(r.calls, apiCall{method: method, body: string(body)})
		r.mu.Unlock()
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"date":1,"chat":{"id":42,"type":"private"}}}`)
	}
}

func (r *botRecorder) methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.method
	}
	return out
}

func (r *botRecorder) lastBody() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return ""
	}
	return r.calls[len(r.calls)-1].body
}

func newTestBot(t *testing.T) (*tele.Bot, *botRecorder) {
	t.Helper()
	rec := &botRecorder{}
	srv := httptest.NewServer(rec.handler())
	t.Cleanup(srv.Close)

	bot, err := tele.NewBot(tele.Settings{
		Token:   "test-token",
		URL:     srv.URL,
		Offline: true,
	})
	require.NoError(t, err)
	return bot, rec
}

func newTestApp(t *testing.T, service http.Handler) *App {
	t.Helper()
	srv := httptest.NewServer(service)
	t.Cleanup(srv.Close)

	a, err := New(&Config{Extractor: extractor.Config{BaseURL: srv.URL}}, nil)
	require.NoError(t, err)
	return a
}

func messageContext(bot *tele.Bot, text string) tele.Context {
	return bot.NewContext(tele.Update{
		ID: 1,
		Message: &tele.Message{
			ID:     10,
			Text:   text,
			Chat:   &tele.Chat{ID: 42},
			Sender: &tele.User{ID: 7},
		},
	})
}

func callbackContext(bot *tele.Bot, data string) tele.Context {
	return bot.NewContext(tele.Update{
		ID: 2,
		Callback: &tele.Callback{
			ID:      "cb1",
			Data:    data,
			Sender:  &tele.User{ID: 7},
			Message: &tele.Message{ID: 10, Chat: &tele.Chat{ID: 42}},
		},
	})
}

func infoService(meta string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/info", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, meta)
	})
	return mux
}

func TestVideoLinkShowsFormatMenu(t *testing.T) {
	a := newTestApp(t, infoService(`{"id":"dQw4w9WgXcQ","title":"Demo Clip","uploader":"Chan","duration":212,"view_count":5}`))
	bot, rec := newTestBot(t)

	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	err := a.handleText(messageContext(bot, url))
	require.NoError(t, err)

	assert.Equal(t, []string{"sendMessage", "editMessageText"}, rec.methods())
	body := rec.lastBody()
	assert.Contains(t, body, "Demo Clip")
	assert.Contains(t, body, "Chan")
	assert.Contains(t, body, "fmt|video_720")

	sess, ok, err := a.sessions.Get(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, url, sess.ActiveURL)
	assert.Equal(t, "Demo Clip", sess.Meta.Title)
}

func TestVideoLinkResolveFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/info", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	a := newTestApp(t, mux)
	bot, rec := newTestBot(t)

	err := a.handleText(messageContext(bot, "https://youtu.be/dQw4w9WgXcQ"))
	require.NoError(t, err)

	assert.Equal(t, []string{"sendMessage", "editMessageText"}, rec.methods())
	assert.Contains(t, rec.lastBody(), "Failed to fetch video info")

	_, ok, err := a.sessions.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchThenDownloadCallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"entries":[{"id":"aaaaaaaaaaa","title":"First Hit","duration":61}]}`)
	})
	mux.HandleFunc("/api/info", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":"aaaaaaaaaaa","title":"First Hit","uploader":"Someone","duration":61,"view_count":9}`)
	})
	a := newTestApp(t, mux)
	bot, rec := newTestBot(t)

	err := a.handleSearch(messageContext(bot, "/search lofi beats"))
	require.NoError(t, err)

	assert.Equal(t, []string{"sendMessage", "sendMessage"}, rec.methods())
	body := rec.lastBody()
	assert.Contains(t, body, "Search Results")
	assert.Contains(t, body, "First Hit")
	assert.Contains(t, body, "watch?v=aaaaaaaaaaa")

	// Picking a result re-enters resolution and shows the format menu.
	err = a.handleDownloadCallback(callbackContext(bot, "\fdl|"+watchURL("aaaaaaaaaaa")))
	require.NoError(t, err)

	body = rec.lastBody()
	assert.Contains(t, body, "First Hit")
	assert.Contains(t, body, "fmt|video_best")

	sess, ok, err := a.sessions.Get(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, watchURL("aaaaaaaaaaa"), sess.ActiveURL)
}

func TestSearchNoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	a := newTestApp(t, mux)
	bot, rec := newTestBot(t)

	err := a.handleSearch(messageContext(bot, "/search nothing here"))
	require.NoError(t, err)
	assert.Contains(t, rec.lastBody(), "No results found")
}

func TestSearchUsageHint(t *testing.T) {
	a := newTestApp(t, http.NewServeMux())
	bot, rec := newTestBot(t)

	err := a.handleSearch(messageContext(bot, "/search"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sendMessage"}, rec.methods())
	assert.Contains(t, rec.lastBody(), "Usage: /search")
}

func TestDownloadCallbackMissingPayload(t *testing.T) {
	a := newTestApp(t, http.NewServeMux())
	bot, rec := newTestBot(t)

	err := a.handleDownloadCallback(callbackContext(bot, "\fdl"))
	require.NoError(t, err)
	assert.Contains(t, rec.lastBody(), "Failed to fetch video info")
}

func TestPlaylistLinkShowsEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/playlist", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"title":"Chill Mix","total":25,"entries":[{"title":"One","url":"https://youtu.be/aaaaaaaaaaa"},{"title":"Two","url":"https://youtu.be/bbbbbbbbbbb"}]}`)
	})
	a := newTestApp(t, mux)
	bot, rec := newTestBot(t)

	err := a.handleText(messageContext(bot, "https://www.youtube.com/playlist?list=PLdU2XZIfSgJz1"))
	require.NoError(t, err)

	assert.Equal(t, []string{"sendMessage", "editMessageText"}, rec.methods())
	body := rec.lastBody()
	assert.Contains(t, body, "Chill Mix")
	assert.Contains(t, body, "25 videos total")
	assert.Contains(t, body, "dl|https://youtu.be/aaaaaaaaaaa")
}
