package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/handiism/podcast-downloader/internal/config"
	"github.com/handiism/podcast-downloader/internal/download"
	"github.com/handiism/podcast-downloader/internal/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
	dryRun     bool
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "podcast-dl xml_file [output_base_dir]",
		Short: "Download podcast episodes listed in an RSS feed file",
		Long: "Reads an RSS feed from xml_file and downloads every episode enclosure to\n" +
			"output_base_dir/<channel>/<YYYY-MM-DD_>-<episode>/<file>.\n" +
			"Episodes already on disk are skipped.",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), settings, opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path (TOML)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show verbose output")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print destinations without downloading")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (console, json)")

	return rootCmd
}

// loadSettings reads the config file and applies positional arguments and
// flags on top of it.
func loadSettings(cmd *cobra.Command, opts rootOptions, args []string) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if len(args) > 1 {
		settings.OutputDir = args[1]
	}
	if cmd.Flags().Changed("log-level") {
		settings.LogLevel = opts.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		settings.LogFormat = opts.logFormat
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func run(ctx context.Context, stdout, stderr io.Writer, settings *config.Settings, opts rootOptions, feedPath string) error {
	logger, err := logging.New(logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: stderr,
	})
	if err != nil {
		return err
	}
	logger = logger.With(slog.String(logging.FieldRunID, uuid.NewString()))
	logger.Debug("starting run",
		slog.String("feed", feedPath),
		slog.String("output_dir", settings.OutputDir),
		slog.Bool("dry_run", opts.dryRun),
	)

	out := newPrinter(stdout, opts.verbose)
	manager := download.NewManager(settings, logger, out.printEvent)

	var summary *download.Summary
	if opts.dryRun {
		summary, err = manager.DryRun(ctx, feedPath)
	} else {
		summary, err = manager.Run(ctx, feedPath)
	}
	if err != nil {
		return err
	}

	out.printSummary(summary, opts.dryRun)
	return nil
}
