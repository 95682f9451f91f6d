package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jaki95/discogs-scraper/config"
	"github.com/jaki95/discogs-scraper/internal/browser"
	"github.com/jaki95/discogs-scraper/internal/discogs"
	"github.com/jaki95/discogs-scraper/internal/output"
	"github.com/jaki95/discogs-scraper/internal/processor"
	"github.com/jaki95/discogs-scraper/internal/progress"
	"github.com/jaki95/discogs-scraper/internal/storage"
)

type options struct {
	configPath string
	genre      string
	output     string
	driver     string
	headless   bool
	append     bool
	logLevel   int
}

// NewRootCmd creates the discogs-scraper command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Crawl Discogs discographies for a genre into JSON lines",
		Long: `discogs-scraper searches Discogs for the most wanted artists of a genre,
reads each artist's profile and first albums, resolves every album to a concrete
release and writes one JSON object per artist to the output file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (yaml or toml)")
	flags.StringVarP(&opts.genre, "genre", "g", "", "genre to search for (default from config, rock)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file name or path")
	flags.StringVar(&opts.driver, "driver", "", "browser driver: rod or static")
	flags.BoolVar(&opts.headless, "headless", true, "run the browser without a window")
	flags.BoolVar(&opts.append, "append", false, "append to the output instead of replacing it")
	flags.IntVar(&opts.logLevel, "log-level", 0, "slog level (-4 debug, 0 info, 4 warn, 8 error)")

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig applies explicitly set flags over the resolved config file.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if opts.genre != "" {
		cfg.Genre = opts.genre
	}
	if opts.output != "" {
		if dir := filepath.Dir(opts.output); dir != "." {
			cfg.Output.Dir = dir
		}
		cfg.Output.File = filepath.Base(opts.output)
	}
	if opts.driver != "" {
		cfg.Browser.Driver = opts.driver
	}
	if flags.Changed("headless") {
		cfg.Browser.Headless = opts.headless
	}
	if flags.Changed("append") {
		cfg.Output.Append = opts.append
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer, runID string) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler).With("run", runID)
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func() error, error) {
	switch cfg.Output.Type {
	case "gcs":
		gcs, err := storage.NewGCSStorage(ctx, cfg.Output.GCS.Bucket, cfg.Output.GCS.Prefix,
			filepath.Join(os.TempDir(), config.AppName), cfg.Output.GCS.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return gcs, gcs.Close, nil
	default:
		local, err := storage.NewLocalFileStorage(cfg.Output.Dir)
		if err != nil {
			return nil, nil, err
		}
		return local, func() error { return nil }, nil
	}
}

func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (err error) {
	runID := uuid.NewString()
	logger := newLogger(cfg, stderr, runID)
	slog.SetDefault(logger)

	store, closeStore, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up output storage: %w", err)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.Warn("Failed to close storage", "error", cerr)
		}
	}()

	w, err := store.GetWriter(cfg.Output.File, cfg.Output.Append)
	if err != nil {
		if errors.Is(err, storage.ErrLocked) {
			return fmt.Errorf("%s is being written by another run", store.Location(cfg.Output.File))
		}
		return fmt.Errorf("failed to open output: %w", err)
	}
	sink := output.NewJSONLSink(w)
	defer func() {
		// Closing uploads the staging file for gcs, so its error matters.
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	b, err := browser.New(browser.Options{
		Driver:         cfg.Browser.Driver,
		Headless:       cfg.Browser.Headless,
		Bin:            cfg.Browser.Bin,
		UserAgent:      cfg.Browser.UserAgent,
		ElementTimeout: cfg.Browser.ElementTimeout.Std(),
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer func() {
		if cerr := b.Close(); cerr != nil {
			logger.Warn("Failed to close browser", "error", cerr)
		}
	}()

	scraper, err := discogs.NewScraper(b, cfg, logger)
	if err != nil {
		return err
	}

	tracker := progress.NewTracker()
	if isTerminal(stdout) {
		tracker.AddListener(newProgressBar().Update)
	}

	location := store.Location(cfg.Output.File)
	logger.Info("Starting crawl", "genre", cfg.Genre, "driver", cfg.Browser.Driver, "output", location)

	p := processor.New(scraper, sink,
		processor.WithTracker(tracker),
		processor.WithLogger(logger),
		processor.WithRun(runID, location),
	)
	summary, runErr := p.Run(ctx, cfg.Genre)

	if summary != nil {
		if rerr := summary.Render(stdout); rerr != nil {
			logger.Warn("Failed to print summary", "error", rerr)
		}
	}
	return runErr
}
