package main

import (
	"errors"
	"fmt"

	"shiftbot/internal/bridge"

	"github.com/spf13/cobra"
)

var (
	sendVia  string
	sendChat string
)

var sendCmd = &cobra.Command{
	Use:     "send <today|tomorrow|active>",
	Short:   "Send the bot's answer to the default chat",
	GroupID: "chat",
	Long: `Builds the same message the bot sends for /shift_today, /shift_tomorrow or
/active_now and delivers it to TELEGRAM_CHAT_ID or SLACK_CHANNEL.

Useful from cron for a daily roster post.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"today", "tomorrow", "active"},
	RunE: func(cmd *cobra.Command, args []string) error {
		command, err := commandFor(args[0])
		if err != nil {
			return err
		}
		n, err := newNotifier(sendVia)
		if err != nil {
			return err
		}
		loader, err := newLoader(cmd)
		if err != nil {
			return err
		}

		bot := bridge.NewBot(bridge.BotConfig{Loader: loader, Logger: logger})
		reply, _, err := bot.Reply(cmd.Context(), command)
		if err != nil {
			return err
		}
		if err := n.Send(cmd.Context(), sendChat, reply); err != nil {
			return fmt.Errorf("sending via %s: %w", sendVia, err)
		}
		if !jsonOutput {
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s via %s.\n", command, sendVia)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendVia, "via", "telegram", "chat platform: telegram or slack")
	sendCmd.Flags().StringVar(&sendChat, "chat", "", "chat or channel ID (default from config)")
}

// commandFor maps a send argument to the chat command it stands for.
func commandFor(arg string) (string, error) {
	switch arg {
	case "today":
		return bridge.CmdShiftToday, nil
	case "tomorrow":
		return bridge.CmdShiftTomorrow, nil
	case "active", "now":
		return bridge.CmdActiveNow, nil
	}
	if cmd := bridge.NormalizeCommand(arg, ""); bridge.IsCommand(cmd) {
		return cmd, nil
	}
	return "", fmt.Errorf("unknown schedule %q (want today, tomorrow or active)", arg)
}

func newNotifier(via string) (bridge.Notifier, error) {
	switch via {
	case "telegram":
		if !cfg.TelegramEnabled() {
			return nil, errors.New("TELEGRAM_TOKEN is not set")
		}
		tg, err := bridge.NewTelegramNotifier(bridge.TelegramConfig{
			Token:       cfg.TelegramToken,
			DefaultChat: cfg.TelegramChatID,
			APIURL:      cfg.TelegramAPIURL,
			Timeout:     cfg.SendTimeout,
		})
		if err != nil {
			return nil, err
		}
		return tg, nil
	case "slack":
		if !cfg.SlackEnabled() {
			return nil, errors.New("SLACK_BOT_TOKEN is not set")
		}
		return bridge.NewSlackNotifier(bridge.SlackConfig{
			BotToken: cfg.SlackBotToken,
			Channel:  cfg.SlackChannel,
			Debug:    cfg.Debug,
		}), nil
	}
	return nil, fmt.Errorf("unknown platform %q (want telegram or slack)", via)
}
