package app

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/clipfetch/clipfetch/core/logger"
	"github.com/clipfetch/clipfetch/core/telegram/callbacks"
	tghelpers "github.com/clipfetch/clipfetch/core/telegram/helpers"
	"github.com/clipfetch/clipfetch/internal/delivery"
)

// handleDownloadCallback re-enters metadata resolution for the chosen
// URL (from a search result, a playlist entry or a re-selection button)
// and redisplays the format menu.
func (a *App) handleDownloadCallback(c tele.Context) error {
	url := callbacks.CallbackPayload(c)
	if url == "" {
		return tghelpers.EditOrSendMD(c, infoFailedText)
	}

	ctx := tghelpers.BuildContext(c)
	meta, err := a.extractor.Resolve(ctx, url)
	if err != nil {
		return tghelpers.EditOrSendMD(c, infoFailedText)
	}
	if err := a.sessions.Put(ctx, c.Sender().ID, url, meta); err != nil {
		logger.Error(ctx, "session", "put.fail",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("error", err.Error()),
		)
		return tghelpers.EditOrSendMD(c, infoFailedText)
	}

	return tghelpers.EditOrSendMD(c, videoCaption(meta), formatMenu())
}

// handleFormatCallback drives the delivery state machine for the
// selected format.
func (a *App) handleFormatCallback(c tele.Context) error {
	token := callbacks.CallbackPayload(c)
	ctx := tghelpers.BuildContext(c)

	if err := tghelpers.EditOrSendMD(c, generatingText); err != nil {
		logger.Debug(ctx, "app", "status.edit.fail",
			slog.String("error", err.Error()),
		)
	}

	res, err := a.orchestrator.Run(ctx, teleTransport{c: c}, c.Sender().ID, token)
	if err != nil {
		return err
	}
	if !res.Failed() {
		return nil
	}

	switch res.Reason {
	case delivery.ReasonSessionExpired:
		return tghelpers.EditOrSendMD(c, sessionLostText)
	default:
		return tghelpers.EditOrSendMD(c, linkFailedText)
	}
}
