package bot

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/baterdene/telewatch/internal/models"
)

// digestItemLimit caps how many items a digest lists per site.
const digestItemLimit = 5

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	message := "Hello! I watch Mongolian telecom operator news pages for changes.\n" +
		"/subscribe - receive a digest after each monitoring run\n" +
		"/unsubscribe - stop receiving digests\n" +
		"/latest - show the latest recorded run per site"

	if err := ctx.Send(message); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// subscribeHandler process command /subscribe.
func (b *Bot) subscribeHandler(ctx telebot.Context) error {
	chatID := ctx.Chat().ID

	if err := b.subs.SubscribeChat(context.Background(), chatID); err != nil {
		b.log.Error("failed to subscribe chat", "chat_id", chatID, "error", err)
		return ctx.Send("Could not subscribe this chat, please try again later.")
	}
	b.log.Info("Chat subscribed", "chat_id", chatID)

	return ctx.Send("Subscribed. You will receive a digest after each monitoring run.")
}

// unsubscribeHandler process command /unsubscribe.
func (b *Bot) unsubscribeHandler(ctx telebot.Context) error {
	chatID := ctx.Chat().ID

	if err := b.subs.UnsubscribeChat(context.Background(), chatID); err != nil {
		b.log.Error("failed to unsubscribe chat", "chat_id", chatID, "error", err)
		return ctx.Send("Could not unsubscribe this chat, please try again later.")
	}
	b.log.Info("Chat unsubscribed", "chat_id", chatID)

	return ctx.Send("Unsubscribed. You will no longer receive digests.")
}

// latestHandler process command /latest: replies with the last recorded
// run for every site present in the run log, custom sites included.
func (b *Bot) latestHandler(ctx telebot.Context) error {
	runs, err := b.runs.GetLatestRuns(context.Background())
	if err != nil {
		b.log.Error("failed to get latest runs", "error", err)
		return ctx.Send("Could not load run history, please try again later.")
	}

	if len(runs) == 0 {
		return ctx.Send("No monitoring runs recorded yet.")
	}

	return ctx.Send(formatLatest(runs))
}

// formatLatest renders one line per site's most recent run.
func formatLatest(runs []models.RunRecord) string {
	var b strings.Builder
	for _, run := range runs {
		fmt.Fprintf(&b, "%s: %s - %d new, %d updated\n",
			run.SiteKey, run.RunDate, run.NewCount, run.UpdatedCount)
	}

	return b.String()
}

// formatDigest builds the Markdown broadcast message. Returns "" when
// no site has changes.
func formatDigest(diffs []models.SiteDiff) string {
	var b strings.Builder
	changed := false

	for _, diff := range diffs {
		if len(diff.NewItems) == 0 && len(diff.UpdatedItems) == 0 {
			continue
		}
		changed = true

		fmt.Fprintf(&b, "*%s* - %d new, %d updated\n",
			diff.SiteKey, len(diff.NewItems), len(diff.UpdatedItems))

		for i, item := range diff.NewItems {
			if i >= digestItemLimit {
				fmt.Fprintf(&b, "  ...and %d more\n", len(diff.NewItems)-digestItemLimit)
				break
			}
			fmt.Fprintf(&b, "  + [%s](%s)\n", item.Title, item.URL)
		}
		for i, item := range diff.UpdatedItems {
			if i >= digestItemLimit {
				fmt.Fprintf(&b, "  ...and %d more\n", len(diff.UpdatedItems)-digestItemLimit)
				break
			}
			fmt.Fprintf(&b, "  ~ [%s](%s) (%s)\n", item.Title, item.URL, strings.Join(item.ChangedFields, ", "))
		}
		b.WriteString("\n")
	}

	if !changed {
		return ""
	}

	return "Website changes detected:\n\n" + b.String()
}
