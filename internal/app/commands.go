package app

import (
	"fmt"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/clipfetch/clipfetch/core/buildinfo"
	"github.com/clipfetch/clipfetch/core/logger"
	coretelegram "github.com/clipfetch/clipfetch/core/telegram"
	"github.com/clipfetch/clipfetch/core/telegram/commands"
	"github.com/clipfetch/clipfetch/core/telegram/format"
	tghelpers "github.com/clipfetch/clipfetch/core/telegram/helpers"
)

func (a *App) buildRegistry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Start the bot",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "Get help",
	})
	reg.RegisterCommand("/about", commands.Command{
		Handler:     a.handleAbout,
		Description: "About this bot",
	})
	reg.RegisterCommand("/search", commands.Command{
		Handler:     a.handleSearch,
		Description: "Search videos",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Show live session count",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.SetTextFallback(a.handleText)

	register := func(key string, h tele.HandlerFunc) {
		if err := reg.RegisterCallback(key, h); err != nil {
			logger.TWire.Warn("callback registration failed",
				slog.String("event", "register.callback.fail"),
				slog.String("key", key),
			)
		}
	}
	register(cbDownload, a.handleDownloadCallback)
	register(cbFormat, a.handleFormatCallback)
	register(cbHelp, a.handleHelp)
	register(cbAbout, a.handleAbout)

	return reg
}

func (a *App) handleStart(c tele.Context) error {
	return tghelpers.SendMD(c, welcomeText, startMenu())
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendMD(c, helpText)
}

func (a *App) handleAbout(c tele.Context) error {
	return tghelpers.SendMD(c, fmt.Sprintf(aboutText, buildinfo.Version))
}

// handleSearch renders up to five ranked results as selection buttons.
func (a *App) handleSearch(c tele.Context) error {
	query := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.Text()), "/search"))
	if query == "" {
		return tghelpers.SendText(c, searchUsageText)
	}

	if err := c.Send(fmt.Sprintf("🔍 Searching for: *%s*...", format.EscapeV1(query)), &tele.SendOptions{ParseMode: tele.ModeMarkdown}); err != nil {
		return err
	}

	ctx := tghelpers.BuildContext(c)
	entries := a.extractor.Search(ctx, query, 5)
	if len(entries) == 0 {
		return tghelpers.SendText(c, noResultsText)
	}

	logger.Info(ctx, "app", "search.results",
		slog.String("query", logger.SanitizeLimit(query, 128)),
		slog.Int("entries", len(entries)),
	)

	text := fmt.Sprintf("🔍 *Search Results for:* %s\n\nChoose a video:", format.EscapeV1(query))
	return tghelpers.SendMD(c, text, searchResultsMenu(entries))
}

// handleStats is the hidden admin diagnostic.
func (a *App) handleStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	n, err := a.sessions.Count(ctx)
	if err != nil {
		return tghelpers.SendText(c, "❌ Stats unavailable right now.")
	}
	return tghelpers.SendMD(c, fmt.Sprintf("📊 *Live sessions:* %d", n))
}
