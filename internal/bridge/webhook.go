package bridge

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-telegram/bot/models"
	"github.com/slack-go/slack"
)

// LivenessText is served on GET /.
const LivenessText = "✅ Shift Bot aktif."

// maxWebhookBody caps the size of an incoming update.
const maxWebhookBody = 1 << 20

// ServerConfig wires the HTTP handlers.
type ServerConfig struct {
	Bot *Bot

	// Telegram enables POST /webhook. WebhookSecret, when set, must match the
	// X-Telegram-Bot-Api-Secret-Token header.
	Telegram      *TelegramNotifier
	WebhookSecret string

	// Slack enables POST /slack/commands. SigningSecret, when set, is used to
	// verify request signatures.
	Slack         *SlackNotifier
	SigningSecret string

	Version string
	Logger  *slog.Logger
}

// Server serves the liveness endpoints and the chat webhooks.
type Server struct {
	bot           *Bot
	telegram      *TelegramNotifier
	webhookSecret string
	slack         *SlackNotifier
	signingSecret string
	version       string
	logger        *slog.Logger
	dedup         *Dedup
}

// NewServer creates the HTTP server handlers.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		bot:           cfg.Bot,
		telegram:      cfg.Telegram,
		webhookSecret: cfg.WebhookSecret,
		slack:         cfg.Slack,
		signingSecret: cfg.SigningSecret,
		version:       cfg.Version,
		logger:        logger,
		dedup:         NewDedup(0),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.telegram != nil {
		mux.HandleFunc("POST /webhook", s.HandleTelegram)
	}
	if s.slack != nil {
		mux.HandleFunc("POST /slack/commands", s.HandleSlackCommand)
	}
	return mux
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, LivenessText)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

// HandleTelegram processes a Telegram webhook update. Well-formed updates are
// acknowledged with {"status":"ok"} whether or not a reply was sent. A
// redelivery that arrives while the first delivery is still being handled
// gets 409 so Telegram retries it later.
func (s *Server) HandleTelegram(w http.ResponseWriter, r *http.Request) {
	if s.webhookSecret != "" {
		got := r.Header.Get("X-Telegram-Bot-Api-Secret-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.webhookSecret)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "error", "error": "invalid secret token"})
			return
		}
	}

	var update models.Update
	if err := json.NewDecoder(io.LimitReader(r.Body, maxWebhookBody)).Decode(&update); err != nil {
		s.logger.Warn("malformed Telegram update", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "error": "invalid payload"})
		return
	}

	var key string
	if update.ID != 0 {
		key = "telegram:" + strconv.FormatInt(update.ID, 10)
		switch s.dedup.Begin(key) {
		case ClaimDone:
			s.logger.Debug("skipping redelivered Telegram update", "update_id", update.ID)
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		case ClaimInFlight:
			s.logger.Debug("Telegram update still in flight", "update_id", update.ID)
			writeJSON(w, http.StatusConflict, map[string]string{"status": "error", "error": "update in progress"})
			return
		}
	}

	var chatID, text string
	if msg := update.Message; msg != nil {
		text = msg.Text
		if msg.Chat.ID != 0 {
			chatID = strconv.FormatInt(msg.Chat.ID, 10)
		}
	}

	if _, err := s.bot.Handle(r.Context(), s.telegram, chatID, text); err != nil {
		if key != "" {
			s.dedup.Release(key)
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"status": "error", "error": "roster unavailable"})
		return
	}
	if key != "" {
		s.dedup.Done(key)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleSlackCommand processes a Slack slash command and posts the reply to
// the channel the command came from.
func (s *Server) HandleSlackCommand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)

	var verifier slack.SecretsVerifier
	if s.signingSecret != "" {
		v, err := slack.NewSecretsVerifier(r.Header, s.signingSecret)
		if err != nil {
			s.logger.Debug("missing or stale Slack signature headers", "error", err)
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
		verifier = v
		r.Body = io.NopCloser(io.TeeReader(r.Body, &verifier))
	}

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		s.logger.Debug("failed to parse Slack slash command", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if s.signingSecret != "" {
		if err := verifier.Ensure(); err != nil {
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
	}

	if _, err := s.bot.Handle(r.Context(), s.slack, cmd.ChannelID, cmd.Command); err != nil {
		http.Error(w, "roster unavailable", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
