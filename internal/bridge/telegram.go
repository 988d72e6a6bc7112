package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot"
)

// DefaultTelegramAPI is the Telegram Bot API base URL.
const DefaultTelegramAPI = "https://api.telegram.org"

// TelegramConfig holds settings for the Telegram notifier.
type TelegramConfig struct {
	Token       string
	DefaultChat string
	APIURL      string        // defaults to DefaultTelegramAPI
	Timeout     time.Duration // defaults to 10s
}

// TelegramNotifier posts messages through the Bot API sendMessage method.
type TelegramNotifier struct {
	api         *bot.Bot
	defaultChat string
}

// NewTelegramNotifier creates a Telegram notifier. No request is made until
// the first Send or Username call.
func NewTelegramNotifier(cfg TelegramConfig) (*TelegramNotifier, error) {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultTelegramAPI
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	api, err := bot.New(cfg.Token,
		bot.WithSkipGetMe(),
		bot.WithServerURL(strings.TrimRight(apiURL, "/")),
		bot.WithHTTPClient(timeout, &http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating Telegram client: %w", err)
	}
	return &TelegramNotifier{api: api, defaultChat: cfg.DefaultChat}, nil
}

// Send posts text to chatID, or the default chat when chatID is empty.
func (t *TelegramNotifier) Send(ctx context.Context, chatID, text string) error {
	if chatID == "" {
		chatID = t.defaultChat
	}
	if chatID == "" {
		return errors.New("no Telegram chat ID")
	}

	if _, err := t.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		return fmt.Errorf("Telegram sendMessage: %w", err)
	}
	return nil
}

// Username returns the bot's @username as reported by getMe.
func (t *TelegramNotifier) Username(ctx context.Context) (string, error) {
	me, err := t.api.GetMe(ctx)
	if err != nil {
		return "", fmt.Errorf("Telegram getMe: %w", err)
	}
	return me.Username, nil
}
