// Package cli provides the command-line interface for gphotos-dl.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ravden/gphotos-downloader/internal/auth"
	"github.com/ravden/gphotos-downloader/internal/config"
	"github.com/ravden/gphotos-downloader/internal/download"
	"github.com/ravden/gphotos-downloader/internal/gphotos"
	"github.com/ravden/gphotos-downloader/internal/model"
)

var (
	// Global flags
	cfgFile         string
	outputPath      string
	cacheDir        string
	noCache         bool
	concurrency     int
	credentialsFile string
	tokenFile       string
	verbose         bool

	// Global logger, initialized before any command runs.
	logger zerolog.Logger
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gphotos-dl",
		Short: "Bulk-export a Google Photos library to local disk",
		Long: `gphotos-dl exports photos and videos from a Google Photos library,
organized on disk by capture date (<output>/<year>/<month>/<day>/).

Enumerated listings are cached per month or album, and files already
present on disk are skipped, so re-running the same export is
incremental: it only fetches what is missing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Logs go to stdout; stderr is reserved for the progress bar.
			logger = zerolog.New(zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: "15:04:05",
			}).With().Timestamp().Logger()
			if !verbose {
				logger = logger.Level(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Base output directory (default \"downloaded\")")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Directory for per-scope listing caches (default \".\")")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Ignore cached listings and re-enumerate from the API")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "Concurrent downloads per scope (default 8)")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials", "", "OAuth client secret JSON (default \"auth.json\")")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token", "", "Cached OAuth token file (default \"token.json\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows per-file messages)")

	rootCmd.AddCommand(newMonthsCmd())
	rootCmd.AddCommand(newAlbumsCmd())

	return rootCmd
}

// Execute runs the CLI, cancelling the run context on SIGINT/SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return NewRootCmd().ExecuteContext(ctx)
}

// loadSettings merges the optional config file with flag overrides.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if cfgFile != "" {
		var err error
		settings, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if outputPath != "" {
		settings.OutputPath = outputPath
	}
	if cacheDir != "" {
		settings.CacheDir = cacheDir
	}
	if noCache {
		settings.DisableCache = true
	}
	if concurrency > 0 {
		settings.ConcurrentDownloads = concurrency
	}
	if credentialsFile != "" {
		settings.CredentialsFile = credentialsFile
	}
	if tokenFile != "" {
		settings.TokenFile = tokenFile
	}

	return settings, nil
}

// newAPIClient authorizes and builds the Photos API client.
func newAPIClient(ctx context.Context, settings *config.Settings) (*gphotos.Client, error) {
	httpClient, err := auth.Client(ctx, settings.CredentialsFile, settings.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("authorizing: %w", err)
	}
	return gphotos.NewClient(httpClient, settings.PageSize, logger), nil
}

// runScopes drives the manager over the scope sequence with a
// per-scope progress bar, then prints the overall totals.
func runScopes(ctx context.Context, settings *config.Settings, api *gphotos.Client, scopes []model.Scope) error {
	manager := download.NewManager(settings, api, func(event download.ProgressEvent) {
		switch event.Level {
		case download.LevelError:
			logger.Error().Msg(event.Message)
		case download.LevelWarning:
			logger.Warn().Msg(event.Message)
		case download.LevelVerbose:
			logger.Debug().Msg(event.Message)
		default:
			logger.Info().Msg(event.Message)
		}
	})
	attachProgressBar(manager)

	summaries, err := manager.Run(ctx, scopes)
	if err != nil {
		return err
	}

	var downloaded, skipped, failed int
	var bytes int64
	for _, s := range summaries {
		downloaded += s.Downloaded
		skipped += s.Skipped
		failed += s.Failed
		bytes += s.Bytes
	}
	logger.Info().
		Int("scopes", len(summaries)).
		Int("downloaded", downloaded).
		Int("skipped", skipped).
		Int("failed", failed).
		Str("total", download.FormatBytes(bytes)).
		Msg("export complete")

	if failed > 0 {
		logger.Warn().Msgf("%d items failed; re-run the same command to retry them", failed)
	}
	return nil
}
