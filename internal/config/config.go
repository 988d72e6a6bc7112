// Package config provides shiftbot configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds shiftbot configuration. Values come from env vars or defaults.
type Config struct {
	// --- Roster source ---

	// GoogleCredentialsJSON is the service-account key bundle, inline
	// (env: GOOGLE_CREDENTIALS_JSON).
	GoogleCredentialsJSON string

	// GoogleCredentialsFile is a path to the key bundle (env: GOOGLE_CREDENTIALS_FILE).
	// Used when GoogleCredentialsJSON is empty.
	GoogleCredentialsFile string

	// SheetID is the spreadsheet key (env: SHEET_ID).
	SheetID string

	// SheetName is the roster worksheet title (env: SHEET_NAME).
	// Default: "New Shift 24/7 " with the trailing space.
	SheetName string

	// RosterXLSXPath reads the roster from a local workbook instead of
	// Google Sheets (env: ROSTER_XLSX_PATH).
	RosterXLSXPath string

	// ShiftTypesPath is the shift-code CSV (env: SHIFT_TYPES_PATH).
	ShiftTypesPath string

	// --- Telegram ---

	// TelegramToken is the bot token (env: TELEGRAM_TOKEN).
	TelegramToken string

	// TelegramChatID is the chat used when a request carries none (env: TELEGRAM_CHAT_ID).
	TelegramChatID string

	// TelegramBotUsername is the bot's @handle (env: TELEGRAM_BOT_USERNAME).
	// Commands addressed to other bots are ignored. When empty the service
	// asks getMe at startup.
	TelegramBotUsername string

	// TelegramAPIURL is the Bot API base URL (env: TELEGRAM_API_URL).
	TelegramAPIURL string

	// TelegramWebhookSecret must match the X-Telegram-Bot-Api-Secret-Token
	// header when set (env: TELEGRAM_WEBHOOK_SECRET).
	TelegramWebhookSecret string

	// --- Slack (optional) ---

	// SlackBotToken enables the Slack surface (env: SLACK_BOT_TOKEN).
	SlackBotToken string

	// SlackSigningSecret verifies slash-command requests (env: SLACK_SIGNING_SECRET).
	SlackSigningSecret string

	// SlackChannel is the default channel ID (env: SLACK_CHANNEL).
	SlackChannel string

	// --- Service ---

	// Timezone is the IANA zone roster dates and "now" are evaluated in (env: TIMEZONE).
	Timezone string

	// Port is the HTTP listen port (env: PORT).
	Port int

	// SendTimeout bounds each outgoing chat API call (env: SEND_TIMEOUT).
	SendTimeout time.Duration

	// LogLevel controls log verbosity: debug, info, warn, error (env: LOG_LEVEL).
	LogLevel string

	// Debug turns on chat client debug output (env: DEBUG).
	Debug bool
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Parse reads configuration from environment variables.
func Parse() *Config {
	return &Config{
		// Roster source
		GoogleCredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		SheetID:               os.Getenv("SHEET_ID"),
		SheetName:             envOr("SHEET_NAME", "New Shift 24/7 "),
		RosterXLSXPath:        os.Getenv("ROSTER_XLSX_PATH"),
		ShiftTypesPath:        envOr("SHIFT_TYPES_PATH", "shift_type.csv"),

		// Telegram
		TelegramToken:         os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID:        os.Getenv("TELEGRAM_CHAT_ID"),
		TelegramBotUsername:   os.Getenv("TELEGRAM_BOT_USERNAME"),
		TelegramAPIURL:        envOr("TELEGRAM_API_URL", "https://api.telegram.org"),
		TelegramWebhookSecret: os.Getenv("TELEGRAM_WEBHOOK_SECRET"),

		// Slack
		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		SlackChannel:       os.Getenv("SLACK_CHANNEL"),

		// Service
		Timezone:    envOr("TIMEZONE", "Asia/Jakarta"),
		Port:        envIntOr("PORT", 5000),
		SendTimeout: envDurationOr("SEND_TIMEOUT", 10*time.Second),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		Debug:       envBoolOr("DEBUG", false),
	}
}

// ListenAddr returns the HTTP listen address for Port.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// CredentialsJSON returns the service-account bundle, inline or from file.
func (c *Config) CredentialsJSON() ([]byte, error) {
	if c.GoogleCredentialsJSON != "" {
		return []byte(c.GoogleCredentialsJSON), nil
	}
	if c.GoogleCredentialsFile == "" {
		return nil, errors.New("GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE is required")
	}
	b, err := os.ReadFile(c.GoogleCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	return b, nil
}

// TelegramEnabled reports whether the Telegram surface is configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// SlackEnabled reports whether the Slack surface is configured.
func (c *Config) SlackEnabled() bool {
	return c.SlackBotToken != ""
}

// ValidateSource checks that a roster source is configured.
func (c *Config) ValidateSource() error {
	if c.RosterXLSXPath != "" {
		return nil
	}
	var errs []error
	if c.SheetID == "" {
		errs = append(errs, errors.New("SHEET_ID is required (or set ROSTER_XLSX_PATH)"))
	}
	if c.GoogleCredentialsJSON == "" && c.GoogleCredentialsFile == "" {
		errs = append(errs, errors.New("GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE is required"))
	}
	return errors.Join(errs...)
}

// Validate checks the settings the HTTP service needs: a roster source and at
// least one chat surface.
func (c *Config) Validate() error {
	errs := []error{c.ValidateSource()}
	if !c.TelegramEnabled() && !c.SlackEnabled() {
		errs = append(errs, errors.New("TELEGRAM_TOKEN or SLACK_BOT_TOKEN is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
