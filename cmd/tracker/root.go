package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/app"
	"github.com/reidsolon/tracker/internal/service"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	logFormat  string

	cfg *app.Config
)

var rootCmd = &cobra.Command{
	Use:           "tracker",
	Short:         "tracker logs calories, goals and todos from your terminal",
	Long:          "tracker is a local-first calorie tracker with a food catalog, daily goals, analytics and a todo list with undo history.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (\":memory:\" for a throwaway store)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

func loadConfig(cmd *cobra.Command) error {
	c, err := app.LoadConfig(configPath, app.DefaultEnvFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}
	if err := c.Validate(); err != nil {
		return err
	}
	logger, err := app.NewLogger(cmd.ErrOrStderr(), c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	cfg = c
	return nil
}

// describeError lists every validation problem on its own line.
func describeError(err error) string {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		msg := fmt.Sprintf("error: invalid %s", ve.Entity)
		for _, p := range ve.Problems {
			msg += "\n  - " + p
		}
		return msg
	}
	return "error: " + err.Error()
}
