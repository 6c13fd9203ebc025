package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/footydigest/matchday/internal/config"
	"github.com/footydigest/matchday/internal/fixtures"
	"github.com/footydigest/matchday/internal/job"
	"github.com/footydigest/matchday/internal/logger"
	"github.com/footydigest/matchday/internal/notifier"
	"github.com/footydigest/matchday/internal/telegram"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds flag values and the per-process send guard.
type options struct {
	configPath       string
	format           string
	logLevel         string
	dryRun           bool
	twitter          bool
	skipWebhookReset bool

	sent bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "matchday",
		Short: "Send today's top football fixtures to a Telegram chat",
		Long: `Fetches today's fixtures (Africa/Lagos date) from football-data.org,
formats the first five and posts them to a Telegram chat. Runs once and exits.

Required environment: FOOTBALL_DATA_API_TOKEN, TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file (or env: CONFIG_PATH)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Run summary format: text or json")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the digest instead of sending it")
	cmd.Flags().BoolVar(&opts.twitter, "twitter", false, "Also post the digest to Twitter (needs TWITTER_* credentials)")
	cmd.Flags().BoolVar(&opts.skipWebhookReset, "skip-webhook-reset", false, "Do not clear the bot's webhook before sending")

	return cmd
}

// runDigest is the main command logic
func runDigest(cmd *cobra.Command, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	path := opts.configPath
	if path == "" {
		path = config.PathFromEnv()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log := logger.New(logger.ParseLevel(level), cmd.ErrOrStderr()).With(logger.Fields{
		"run_id": uuid.NewString(),
		"env":    cfg.Env,
	})
	logger.SetDefault(log)
	defer log.Sync() // nolint:errcheck

	fetcher := fixtures.New(cfg.FootballData.Token,
		fixtures.WithBaseURL(cfg.FootballData.BaseURL),
		fixtures.WithTimeout(cfg.FootballData.Timeout),
	)
	tg := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
		telegram.WithBaseURL(cfg.Telegram.BaseURL),
		telegram.WithTimeout(cfg.Telegram.Timeout),
	)

	var primary notifier.Notifier = tg
	var jobOpts []job.Option
	if opts.dryRun {
		primary = notifier.NewDryRunNotifier(cmd.OutOrStdout())
	} else {
		if cfg.Telegram.ResetWebhook && !opts.skipWebhookReset {
			jobOpts = append(jobOpts, job.WithWebhookResetter(tg))
		}
		if opts.twitter {
			tw, err := notifier.NewTwitterNotifier(cfg.Twitter)
			if err != nil {
				logger.Warn("Twitter cross-post disabled", logger.Fields{"error": err.Error()})
			} else {
				jobOpts = append(jobOpts, job.WithExtraNotifiers(tw))
			}
		}
	}

	runner := job.New(cfg.Credentials(), fetcher, primary, jobOpts...)
	report, err := runner.Run(cmd.Context(), opts.sent)
	if err != nil {
		return err
	}
	opts.sent = opts.sent || report.Attempted

	logger.Info(report.Summary(), nil)
	logger.Debug("Run metrics", logger.Fields(logger.GetMetricsSnapshot()))

	if err := WriteOutput(cmd.OutOrStdout(), NewOutputResult(report), format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI. Network failures never surface here; every error
// returned by the command is a configuration problem.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
