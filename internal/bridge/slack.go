package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackConfig holds settings for the Slack notifier.
type SlackConfig struct {
	BotToken string
	Channel  string // default channel ID
	Debug    bool

	// APIURL overrides the Slack Web API base URL (tests). Must end in "/".
	APIURL string
}

// SlackNotifier posts messages with chat.postMessage.
type SlackNotifier struct {
	api     *slack.Client
	channel string
}

// NewSlackNotifier creates a Slack notifier.
func NewSlackNotifier(cfg SlackConfig) *SlackNotifier {
	opts := []slack.Option{slack.OptionDebug(cfg.Debug)}
	if cfg.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.APIURL))
	}
	return &SlackNotifier{
		api:     slack.New(cfg.BotToken, opts...),
		channel: cfg.Channel,
	}
}

// Send posts text to the channel, or the default channel when channelID is empty.
func (s *SlackNotifier) Send(ctx context.Context, channelID, text string) error {
	if channelID == "" {
		channelID = s.channel
	}
	if channelID == "" {
		return errors.New("no Slack channel")
	}
	if _, _, err := s.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("Slack postMessage: %w", err)
	}
	return nil
}
