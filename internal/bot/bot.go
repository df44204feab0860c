// Package bot exposes the Telegram side of the monitor: chats
// subscribe to change alerts and receive a digest after each run.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/telebot.v4"

	"github.com/baterdene/telewatch/internal/models"
	"github.com/baterdene/telewatch/internal/repository"
)

// Bot contains the bot API instance and other information.
type Bot struct {
	bot  API
	log  *slog.Logger
	subs repository.Subscriptions
	runs repository.Runs
}

func NewBot(log *slog.Logger, token string, poller time.Duration, subs repository.Subscriptions, runs repository.Runs) (*Bot, error) {
	tbot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", tbot.Me.Username)

	botInstance := &Bot{bot: tbot, log: log, subs: subs, runs: runs}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	// Public routes.
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/subscribe", b.subscribeHandler)
	b.bot.Handle("/unsubscribe", b.unsubscribeHandler)
	b.bot.Handle("/latest", b.latestHandler)
}

// Notify sends the run digest to every subscribed chat. Delivery
// failures are logged per chat and do not abort the broadcast.
func (b *Bot) Notify(ctx context.Context, diffs []models.SiteDiff) error {
	const opn = "bot.Notify"

	message := formatDigest(diffs)
	if message == "" {
		b.log.InfoContext(ctx, "no changes, skipping notification")
		return nil
	}

	chatIDs, err := b.subs.GetSubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribers: %w", opn, err)
	}

	for _, chatID := range chatIDs {
		if _, err = b.bot.Send(telebot.ChatID(chatID), message, telebot.ModeMarkdown); err != nil {
			b.log.WarnContext(ctx, "failed to notify chat", "op", opn, "chat_id", chatID, "error", err)
		}
	}
	b.log.InfoContext(ctx, "run digest sent", "op", opn, "subscribers", len(chatIDs))

	return nil
}
