package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"metabridge/internal/gateway/app"
	"metabridge/internal/gateway/config"
	"metabridge/internal/logging"
)

type rootOptions struct {
	remote   string
	logLevel string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "metabridge",
		Short: "Resolve legacy dataset contributors",
		Long: `metabridge reads the legacy agent tables of a dataset and prints the
consolidated contributor or author list as JSON.

Without --remote the legacy store configured through the environment
(LEGACY_DB_DSN, LEGACY_FIXTURE_FILE, ...) is queried in-process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.remote, "remote", "", "base URL of a running gateway (Connect protocol)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (default: LOG_LEVEL or warn)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")

	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newRolesCmd())
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

// loadApp builds the in-process application from the environment. CLI runs
// log at warn unless asked otherwise so JSON output stays readable.
func loadApp(ctx context.Context, opts *rootOptions, port string) (*app.App, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if port != "" {
		cfg.Port = port
	}
	level := logLevel(opts, "warn")
	logger, err := logging.New(level, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return app.NewWithConfig(ctx, cfg, logger)
}

// logLevel picks --log-level, then LOG_LEVEL, then fallback.
func logLevel(opts *rootOptions, fallback string) string {
	return firstNonEmpty(opts.logLevel, os.Getenv("LOG_LEVEL"), fallback)
}

func newHTTPClient(opts *rootOptions) *http.Client {
	return &http.Client{Timeout: opts.timeout}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func syncLogger(logger *zap.Logger) {
	_ = logger.Sync()
}
