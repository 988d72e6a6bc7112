// Command shiftbot is the shift-schedule chat bot service.
//
// It answers /shift_today, /shift_tomorrow and /active_now from a roster kept
// in Google Sheets (or a local workbook). Telegram updates arrive on
// POST /webhook and Slack slash commands on POST /slack/commands. The roster
// is re-read on every command.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"shiftbot/internal/app"
	"shiftbot/internal/bridge"
	"shiftbot/internal/config"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := config.LoadDotEnv(envOr("ENV_FILE", ".env")); err != nil {
		slog.Error("failed to load env file", "error", err)
		os.Exit(1)
	}
	cfg := config.Parse()

	logger := setupLogger(cfg.LogLevel)
	logger.Info("starting shiftbot",
		"version", version,
		"commit", commit,
		"sheet_id", cfg.SheetID,
		"sheet_name", cfg.SheetName,
		"roster_xlsx", cfg.RosterXLSXPath,
		"timezone", cfg.Timezone,
		"listen_addr", cfg.ListenAddr())

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	loader, err := app.NewLoader(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up roster loader", "error", err)
		os.Exit(1)
	}

	serverCfg := bridge.ServerConfig{
		WebhookSecret: cfg.TelegramWebhookSecret,
		SigningSecret: cfg.SlackSigningSecret,
		Version:       version,
		Logger:        logger,
	}
	username := cfg.TelegramBotUsername
	if cfg.TelegramEnabled() {
		tg, err := bridge.NewTelegramNotifier(bridge.TelegramConfig{
			Token:       cfg.TelegramToken,
			DefaultChat: cfg.TelegramChatID,
			APIURL:      cfg.TelegramAPIURL,
			Timeout:     cfg.SendTimeout,
		})
		if err != nil {
			logger.Error("failed to create Telegram client", "error", err)
			os.Exit(1)
		}
		if username == "" {
			if username, err = tg.Username(ctx); err != nil {
				logger.Warn("could not look up bot username, commands addressed with @ are ignored", "error", err)
			}
		}
		serverCfg.Telegram = tg
		logger.Info("Telegram webhook enabled", "default_chat", cfg.TelegramChatID, "username", username)
	}
	if cfg.SlackEnabled() {
		serverCfg.Slack = bridge.NewSlackNotifier(bridge.SlackConfig{
			BotToken: cfg.SlackBotToken,
			Channel:  cfg.SlackChannel,
			Debug:    cfg.Debug,
		})
		if cfg.SlackSigningSecret == "" {
			logger.Warn("SLACK_SIGNING_SECRET not set, slash commands are not verified")
		}
		logger.Info("Slack slash commands enabled", "channel", cfg.SlackChannel)
	}
	serverCfg.Bot = bridge.NewBot(bridge.BotConfig{Loader: loader, Username: username, Logger: logger})

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           bridge.NewServer(serverCfg).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func init() {
	if v := os.Getenv("VERSION"); v != "" {
		version = v
	}
}
