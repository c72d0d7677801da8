// Package delivery drives a single format-selection event from session
// lookup through stream resolution to inline delivery or link fallback.
package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clipfetch/clipfetch/core/logger"
	"github.com/clipfetch/clipfetch/internal/extractor"
	"github.com/clipfetch/clipfetch/internal/formats"
	"github.com/clipfetch/clipfetch/internal/session"
)

// State names a step of the delivery state machine.
type State string

const (
	StateAwaitingSelection State = "awaiting_selection"
	StateResolving         State = "resolving"
	StateDelivering        State = "delivering"
	StateDelivered         State = "delivered"
	StateLinkFallback      State = "link_fallback"
	StateFailed            State = "failed"
)

// Reason explains why a run ended in StateFailed.
type Reason string

const (
	// ReasonSessionExpired means the selection arrived with no backing
	// session; the user must resend the link.
	ReasonSessionExpired Reason = "session_expired"
	// ReasonResolveFailed means no stream reference could be resolved
	// for the chosen format; another quality may still succeed.
	ReasonResolveFailed Reason = "resolve_failed"
	// ReasonReplyFailed means the terminal reply itself could not be sent.
	ReasonReplyFailed Reason = "reply_failed"
)

// StreamResolver resolves a direct stream reference for a format spec.
type StreamResolver interface {
	ResolveStream(ctx context.Context, url, formatSpec string) (extractor.Stream, error)
}

// Transport is the outbound boundary for delivery replies. Inline may
// fail with any transport-level error (typically a size ceiling); the
// orchestrator does not distinguish causes beyond "rejected".
type Transport interface {
	// Inline attempts to deliver the stream as a media attachment.
	Inline(ctx context.Context, stream extractor.Stream, choice formats.Choice) error
	// Confirm sends the post-delivery confirmation with a browser-link
	// fallback button.
	Confirm(ctx context.Context, stream extractor.Stream, choice formats.Choice) error
	// LinkOnly sends the degraded link-only reply with a re-selection
	// affordance for the original URL.
	LinkOnly(ctx context.Context, stream extractor.Stream, choice formats.Choice, originalURL string) error
}

// Result is the terminal outcome of one delivery run.
type Result struct {
	AttemptID string
	State     State
	Reason    Reason
	Choice    formats.Choice
	Stream    extractor.Stream
}

// Failed reports whether the run ended in the failure state.
func (r Result) Failed() bool { return r.State == StateFailed }

// Orchestrator owns the delivery state machine.
type Orchestrator struct {
	sessions session.Store
	resolver StreamResolver
}

// NewOrchestrator wires the orchestrator with its collaborators.
func NewOrchestrator(sessions session.Store, resolver StreamResolver) *Orchestrator {
	return &Orchestrator{sessions: sessions, resolver: resolver}
}

// Run handles one format-selection event for the given user. Every
// terminal state corresponds to exactly one user-facing reply, sent
// through the transport by this method or rendered by the caller from
// the returned Result. Run never sends a second inline attempt for the
// same resolution.
func (o *Orchestrator) Run(ctx context.Context, transport Transport, userID int64, token string) (Result, error) {
	res := Result{
		AttemptID: uuid.NewString(),
		State:     StateAwaitingSelection,
		Choice:    formats.Parse(token),
	}
	start := time.Now()

	sess, ok, err := o.sessions.Get(ctx, userID)
	if err != nil || !ok {
		res.State = StateFailed
		res.Reason = ReasonSessionExpired
		o.logTerminal(ctx, res, start, err)
		return res, nil
	}

	res.State = StateResolving
	stream, err := o.resolver.ResolveStream(ctx, sess.ActiveURL, res.Choice.FormatSpec())
	if err != nil || stream.URL == "" {
		res.State = StateFailed
		res.Reason = ReasonResolveFailed
		o.logTerminal(ctx, res, start, err)
		return res, nil
	}
	res.Stream = stream

	res.State = StateDelivering
	if err := transport.Inline(ctx, stream, res.Choice); err != nil {
		// Transport rejected the attachment; degrade to a link reply.
		res.State = StateLinkFallback
		logger.Debug(ctx, "delivery", "inline.rejected",
			slog.String("attempt_id", res.AttemptID),
			slog.String("error", logger.SanitizeLimit(err.Error(), 256)),
		)
		if sendErr := transport.LinkOnly(ctx, stream, res.Choice, sess.ActiveURL); sendErr != nil {
			res.State = StateFailed
			res.Reason = ReasonReplyFailed
			o.logTerminal(ctx, res, start, sendErr)
			return res, sendErr
		}
		o.logTerminal(ctx, res, start, nil)
		return res, nil
	}

	res.State = StateDelivered
	if err := transport.Confirm(ctx, stream, res.Choice); err != nil {
		o.logTerminal(ctx, res, start, err)
		return res, err
	}
	o.logTerminal(ctx, res, start, nil)
	return res, nil
}

func (o *Orchestrator) logTerminal(ctx context.Context, res Result, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("attempt_id", res.AttemptID),
		slog.String("state", string(res.State)),
		slog.String("format", res.Choice.Token()),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	}
	if res.Reason != "" {
		attrs = append(attrs, slog.String("reason", string(res.Reason)))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", logger.SanitizeLimit(err.Error(), 256)))
		logger.Warn(ctx, "delivery", "run.done", attrs...)
		return
	}
	logger.Info(ctx, "delivery", "run.done", attrs...)
}
