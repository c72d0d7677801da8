package delivery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipfetch/clipfetch/internal/extractor"
	"github.com/clipfetch/clipfetch/internal/formats"
	"github.com/clipfetch/clipfetch/internal/session"
)

type fakeResolver struct {
	stream extractor.Stream
	err    error

	gotURL    string
	gotFormat string
}

func (f *fakeResolver) ResolveStream(_ context.Context, url, formatSpec string) (extractor.Stream, error) {
	f.gotURL = url
	f.gotFormat = formatSpec
	return f.stream, f.err
}

type fakeTransport struct {
	inlineErr error

	inlineCalls   int
	confirmCalls  int
	linkOnlyCalls int
	linkOnlyURL   string
	linkOnlyErr   error
}

func (f *fakeTransport) Inline(context.Context, extractor.Stream, formats.Choice) error {
	f.inlineCalls++
	return f.inlineErr
}

func (f *fakeTransport) Confirm(context.Context, extractor.Stream, formats.Choice) error {
	f.confirmCalls++
	return nil
}

func (f *fakeTransport) LinkOnly(_ context.Context, _ extractor.Stream, _ formats.Choice, originalURL string) error {
	f.linkOnlyCalls++
	f.linkOnlyURL = originalURL
	return f.linkOnlyErr
}

func seededStore(t *testing.T, userID int64, url string) session.Store {
	t.Helper()
	store := session.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), userID, url, extractor.Metadata{Title: "clip"}))
	return store
}

func TestRunDelivered(t *testing.T) {
	resolver := &fakeResolver{stream: extractor.Stream{URL: "https://cdn.example/v.mp4", Title: "clip", Ext: "mp4"}}
	transport := &fakeTransport{}
	orch := NewOrchestrator(seededStore(t, 42, "https://youtu.be/dQw4w9WgXcQ"), resolver)

	res, err := orch.Run(context.Background(), transport, 42, "fmt_video_720")
	require.NoError(t, err)
	assert.Equal(t, StateDelivered, res.State)
	assert.NotEmpty(t, res.AttemptID)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", resolver.gotURL)
	assert.Equal(t, "best[height<=720]", resolver.gotFormat)
	assert.Equal(t, 1, transport.inlineCalls)
	assert.Equal(t, 1, transport.confirmCalls)
	assert.Zero(t, transport.linkOnlyCalls)
}

func TestRunSessionExpired(t *testing.T) {
	resolver := &fakeResolver{}
	transport := &fakeTransport{}
	orch := NewOrchestrator(session.NewMemoryStore(), resolver)

	res, err := orch.Run(context.Background(), transport, 42, "fmt_video_best")
	require.NoError(t, err)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, ReasonSessionExpired, res.Reason)
	assert.Empty(t, resolver.gotURL)
	assert.Zero(t, transport.inlineCalls)
}

func TestRunResolveFailed(t *testing.T) {
	resolver := &fakeResolver{err: extractor.ErrNoStream}
	transport := &fakeTransport{}
	orch := NewOrchestrator(seededStore(t, 42, "https://youtu.be/dQw4w9WgXcQ"), resolver)

	res, err := orch.Run(context.Background(), transport, 42, "fmt_video_1080")
	require.NoError(t, err)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, ReasonResolveFailed, res.Reason)
	assert.Zero(t, transport.inlineCalls)
}

func TestRunLinkFallback(t *testing.T) {
	resolver := &fakeResolver{stream: extractor.Stream{URL: "https://cdn.example/v.mp4", SizeBytes: 1 << 31}}
	transport := &fakeTransport{inlineErr: errors.New("telegram: file too big (413)")}
	orch := NewOrchestrator(seededStore(t, 42, "https://youtu.be/dQw4w9WgXcQ"), resolver)

	res, err := orch.Run(context.Background(), transport, 42, "fmt_video_best")
	require.NoError(t, err)
	assert.Equal(t, StateLinkFallback, res.State)

	// Exactly one inline attempt and one degraded reply, with the
	// original URL attached for re-selection.
	assert.Equal(t, 1, transport.inlineCalls)
	assert.Equal(t, 1, transport.linkOnlyCalls)
	assert.Zero(t, transport.confirmCalls)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", transport.linkOnlyURL)
}

func TestRunLinkFallbackReplyFailed(t *testing.T) {
	resolver := &fakeResolver{stream: extractor.Stream{URL: "https://cdn.example/v.mp4"}}
	transport := &fakeTransport{
		inlineErr:   errors.New("rejected"),
		linkOnlyErr: errors.New("network down"),
	}
	orch := NewOrchestrator(seededStore(t, 42, "https://youtu.be/dQw4w9WgXcQ"), resolver)

	res, err := orch.Run(context.Background(), transport, 42, "fmt_audio")
	assert.Error(t, err)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, ReasonReplyFailed, res.Reason)
	assert.Equal(t, 1, transport.linkOnlyCalls)
}

func TestRunAudioFormatSpec(t *testing.T) {
	resolver := &fakeResolver{stream: extractor.Stream{URL: "https://cdn.example/a.m4a"}}
	transport := &fakeTransport{}
	orch := NewOrchestrator(seededStore(t, 42, "https://youtu.be/dQw4w9WgXcQ"), resolver)

	res, err := orch.Run(context.Background(), transport, 42, "fmt_audio")
	require.NoError(t, err)
	assert.Equal(t, StateDelivered, res.State)
	assert.Equal(t, "bestaudio/best", resolver.gotFormat)
	assert.Equal(t, formats.KindAudio, res.Choice.Kind)
}
