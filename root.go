package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/icco/gamereport/lib/config"
	"github.com/icco/gamereport/lib/db"
	"github.com/icco/gamereport/lib/reporter"
	"github.com/icco/gamereport/lib/source"
	"github.com/spf13/cobra"
)

// usageError marks invocations that are wrong regardless of the catalog.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

type options struct {
	playlist string
	playtime bool
	catalog  string
	out      string
	top      int
	cfgFile  string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gamereport",
		Short: "Builds statistics reports over a Flashpoint game catalog.",
		Long: `gamereport loads games from a Flashpoint catalog database and writes
count tables, sorted listings and charts for them.

The games come from a launcher playlist export (--playlist), from every game
with recorded playtime (--playtime), or both.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.playlist == "" && !opts.playtime {
				_ = cmd.Usage()
				fmt.Fprintln(cmd.ErrOrStderr(), "Error: one of --playlist or --playtime is required")
				return &usageError{msg: "one of --playlist or --playtime is required"}
			}
			if opts.playtime && opts.playlist != "" && source.ReportName(opts.playlist) == source.PlayedReportName {
				msg := fmt.Sprintf("playlist %s and --playtime would both write the %q report", opts.playlist, source.PlayedReportName)
				fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+msg)
				return &usageError{msg: msg}
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return run(ctx, cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.playlist, "playlist", "p", "", "Playlist JSON export to report on")
	flags.BoolVarP(&opts.playtime, "playtime", "t", false, "Report on every game with recorded playtime")
	flags.StringVar(&opts.catalog, "catalog", "", "Path to the catalog SQLite database (overrides catalog.path)")
	flags.StringVar(&opts.out, "out", "", "Directory reports are written under (overrides report.dir)")
	flags.IntVar(&opts.top, "top", 0, "Number of entries plotted per chart (overrides report.top)")
	flags.StringVar(&opts.cfgFile, "config", "", "YAML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// loadConfig layers the changed flags on top of the file and environment.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog.Path = opts.catalog
	}
	if flags.Changed("out") {
		cfg.Report.Dir = opts.out
	}
	if flags.Changed("top") {
		cfg.Report.Top = opts.top
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if opts.playlist != "" {
		if err := source.CheckPlaylist(opts.playlist); err != nil {
			return err
		}
	}

	gormDB, err := db.Open(cfg.Catalog.Path, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Warn("Failed to close catalog", slog.Any("error", err))
		}
	}()

	if err := db.Verify(ctx, gormDB); err != nil {
		return err
	}

	rep := reporter.New(gormDB, cfg, logger, cmd.OutOrStdout())

	if opts.playlist != "" {
		ids, err := source.FromPlaylist(opts.playlist)
		if err != nil {
			return err
		}
		if _, err := rep.Generate(ctx, source.ReportName(opts.playlist), ids); err != nil {
			return fmt.Errorf("failed to generate playlist report: %w", err)
		}
	}

	if opts.playtime {
		ids, err := source.Played(ctx, gormDB)
		if err != nil {
			return err
		}
		logger.Debug("Resolved played games", slog.Int("count", len(ids)))
		if _, err := rep.Generate(ctx, source.PlayedReportName, ids); err != nil {
			return fmt.Errorf("failed to generate played report: %w", err)
		}
	}

	return nil
}
