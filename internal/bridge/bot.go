// Package bridge connects chat platforms to the shift roster.
//
// Bot maps chat commands to roster queries and delivers the formatted answer
// through a Notifier. The HTTP side lives in webhook.go.
//
// Files:
//   - bot.go: command dispatch and reply building
//   - format.go: message text rendering
//   - telegram.go, slack.go: Notifier implementations
//   - webhook.go: HTTP handlers for Telegram updates and Slack slash commands
//   - dedup.go: suppression of redelivered Telegram updates
package bridge

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"shiftbot/internal/roster"
)

// Chat commands.
const (
	CmdShiftToday    = "/shift_today"
	CmdShiftTomorrow = "/shift_tomorrow"
	CmdActiveNow     = "/active_now"
)

// ScheduleLoader rebuilds the schedule on demand.
type ScheduleLoader interface {
	Load(ctx context.Context) (roster.Schedule, error)
	Today() time.Time
}

// BotConfig holds configuration for the command bot.
type BotConfig struct {
	Loader ScheduleLoader

	// Username is the bot's chat handle, with or without "@". Only commands
	// addressed to it ("/shift_today@<Username>") or to no one are answered.
	Username string

	Logger *slog.Logger
}

// Bot answers shift commands. It holds no state between requests.
type Bot struct {
	loader   ScheduleLoader
	username string
	logger   *slog.Logger
}

// NewBot creates a command bot.
func NewBot(cfg BotConfig) *Bot {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{loader: cfg.Loader, username: cfg.Username, logger: logger}
}

// NormalizeCommand trims and lower-cases chat text. A "@username" suffix is
// dropped when it names this bot, so with username "RosterBot"
// "/Shift_Today@RosterBot " becomes "/shift_today". A suffix naming another
// bot is kept and the result is not a known command.
func NormalizeCommand(text, username string) string {
	cmd := strings.ToLower(strings.TrimSpace(text))
	i := strings.IndexByte(cmd, '@')
	if i <= 0 || !strings.HasPrefix(cmd, "/") {
		return cmd
	}
	self := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(username), "@"))
	if self != "" && cmd[i+1:] == self {
		cmd = cmd[:i]
	}
	return cmd
}

// IsCommand reports whether cmd, already normalized, is a command the bot answers.
func IsCommand(cmd string) bool {
	switch cmd {
	case CmdShiftToday, CmdShiftTomorrow, CmdActiveNow:
		return true
	}
	return false
}

// Reply builds the answer for a command. handled is false for unknown
// commands, which get no reply. The schedule is reloaded on every call.
func (b *Bot) Reply(ctx context.Context, text string) (reply string, handled bool, err error) {
	cmd := NormalizeCommand(text, b.username)
	if !IsCommand(cmd) {
		b.logger.Debug("ignoring unknown command", "text", text)
		return "", false, nil
	}

	sched, err := b.loader.Load(ctx)
	if err != nil {
		return "", true, err
	}
	now := b.loader.Today()

	switch cmd {
	case CmdShiftToday:
		return FormatSchedule(sched.OnDate(now), roster.DateKey(now)), true, nil
	case CmdShiftTomorrow:
		tomorrow := now.AddDate(0, 0, 1)
		return FormatSchedule(sched.OnDate(tomorrow), roster.DateKey(tomorrow)), true, nil
	default:
		return FormatActive(sched.ActiveAt(now)), true, nil
	}
}

// Handle answers a command and sends the reply to chatID. Delivery failures
// are logged and dropped; only schedule load failures are returned.
func (b *Bot) Handle(ctx context.Context, n Notifier, chatID, text string) (handled bool, err error) {
	reply, handled, err := b.Reply(ctx, text)
	if err != nil {
		b.logger.Error("failed to load schedule", "command", NormalizeCommand(text, b.username), "error", err)
		return handled, err
	}
	if !handled {
		return false, nil
	}
	if n == nil {
		b.logger.Warn("no notifier configured, dropping reply", "chat_id", chatID)
		return true, nil
	}
	if err := n.Send(ctx, chatID, reply); err != nil {
		b.logger.Error("failed to send shift notification", "chat_id", chatID, "error", err)
		return true, nil
	}
	b.logger.Info("sent shift notification", "command", NormalizeCommand(text, b.username), "chat_id", chatID)
	return true, nil
}
