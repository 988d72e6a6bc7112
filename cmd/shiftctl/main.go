// Command shiftctl queries the shift roster from a terminal and can push the
// chat bot's answers to the default Telegram chat or Slack channel.
//
// It reads the same environment (and .env file) as the shiftbot service.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "time/tzdata"

	"shiftbot/internal/app"
	"shiftbot/internal/config"
	"shiftbot/internal/roster"
	"shiftbot/internal/sheets"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	envFile    string
	jsonOutput bool
	atFlag     string
	gridFile   string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shiftctl <command>",
	Short: "Shift roster CLI",
	Long: `shiftctl reads the shift roster and shift-type table configured for shiftbot
and prints who is on shift. Use "send" to deliver the bot's answer to chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		cfg = config.Parse()
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", envOr("ENV_FILE", ".env"), "dotenv file to load")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&atFlag, "at", "", "evaluate at this RFC 3339 instant instead of now")
	rootCmd.PersistentFlags().StringVar(&gridFile, "grid", "", "read the roster from a CSV export instead of the configured sheet")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddGroup(
		&cobra.Group{ID: "roster", Title: "Roster:"},
		&cobra.Group{ID: "chat", Title: "Chat:"},
	)

	cobra.EnableCommandSorting = false

	// Roster
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(tomorrowCmd)
	rootCmd.AddCommand(activeCmd)
	rootCmd.AddCommand(typesCmd)

	// Chat
	rootCmd.AddCommand(sendCmd)

	rootCmd.AddCommand(versionCmd)
}

// newLoader builds the roster loader, reading --grid when given and pinning
// "now" when --at is given.
func newLoader(cmd *cobra.Command) (*roster.Loader, error) {
	var (
		loader *roster.Loader
		err    error
	)
	if gridFile != "" {
		src, lerr := sheets.LoadCSV(gridFile)
		if lerr != nil {
			return nil, lerr
		}
		loader, err = app.NewLoaderFrom(cfg, src, logger)
	} else {
		loader, err = app.NewLoader(cmd.Context(), cfg, logger)
	}
	if err != nil {
		return nil, err
	}
	if atFlag != "" {
		at, err := time.Parse(time.RFC3339, atFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --at %q: %w", atFlag, err)
		}
		loader.Now = func() time.Time { return at }
	}
	return loader, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shiftctl %s (%s)\n", version, commit)
	},
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
