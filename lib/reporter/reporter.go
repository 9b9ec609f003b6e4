package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/icco/gamereport/lib/charts"
	"github.com/icco/gamereport/lib/config"
	"github.com/icco/gamereport/lib/games"
	"github.com/icco/gamereport/lib/report"
	"github.com/icco/gamereport/lib/stats"
	"github.com/icco/gamereport/lib/types"
	"gorm.io/gorm"
)

type Reporter struct {
	db         *gorm.DB
	cfg        *config.Config
	logger     *slog.Logger
	aggregator *stats.Aggregator
	charts     *charts.Renderer
	out        io.Writer
}

// Result describes one generated report.
type Result struct {
	Report *types.Report
	Layout report.Layout
	Files  []string
}

// New builds a Reporter. A nil out disables the terminal summary.
func New(db *gorm.DB, cfg *config.Config, logger *slog.Logger, out io.Writer) *Reporter {
	return &Reporter{
		db:         db,
		cfg:        cfg,
		logger:     logger,
		aggregator: stats.New(cfg.Report.TagDelimiters, logger),
		charts:     charts.New(cfg.Chart.Width, cfg.Chart.Height, logger),
		out:        out,
	}
}

// Generate loads the games behind ids and writes the report called name.
func (r *Reporter) Generate(ctx context.Context, name string, ids []string) (*Result, error) {
	logger := r.logger.With(slog.String("report", name))
	logger.Debug("Starting report generation", slog.Int("ids", len(ids)))

	gameList, err := games.Load(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded games", slog.Int("count", len(gameList)))

	rep, err := r.aggregator.Aggregate(name, gameList)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", name, err)
	}

	layout := report.NewLayout(r.cfg.Report.Dir, name)
	if err := layout.Prepare(); err != nil {
		return nil, err
	}

	res := &Result{Report: rep, Layout: layout}
	if err := r.writeTables(res); err != nil {
		return nil, err
	}
	if err := r.renderCharts(res, logger); err != nil {
		return nil, err
	}

	if r.cfg.Report.HTML {
		if err := report.WriteIndex(layout, rep, r.cfg.Report.Top, res.Files); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, layout.Index())
	}

	if r.out != nil {
		report.Summary(r.out, rep)
	}

	logger.Info("Report written",
		slog.String("dir", layout.Root),
		slog.Int("games", rep.TotalGames),
		slog.Int("files", len(res.Files)))
	return res, nil
}

func (r *Reporter) writeTables(res *Result) error {
	l, rep := res.Layout, res.Report

	for _, table := range rep.Categories {
		path := l.CSV(table.Field)
		if err := report.WriteCounts(path, table); err != nil {
			return err
		}
		res.Files = append(res.Files, path)
	}

	path := l.CSV(report.FieldReleaseDate)
	if err := report.WriteDated(path, rep.ReleaseDates); err != nil {
		return err
	}
	res.Files = append(res.Files, path)

	path = l.CSV(report.FieldPlaytime)
	if err := report.WriteRecords(path, rep.Playtime); err != nil {
		return err
	}
	res.Files = append(res.Files, path)

	path = l.CSV(report.FieldYearPlatform)
	if err := report.WriteCrossTab(path, rep.YearPlatform); err != nil {
		return err
	}
	res.Files = append(res.Files, path)

	return nil
}

func (r *Reporter) renderCharts(res *Result, logger *slog.Logger) error {
	l, rep := res.Layout, res.Report
	top := r.cfg.Report.Top

	render := func(path string, draw func() error) error {
		if err := draw(); err != nil {
			if errors.Is(err, charts.ErrNoData) {
				logger.Warn("Skipping empty chart", slog.String("path", path))
				return nil
			}
			return err
		}
		res.Files = append(res.Files, path)
		return nil
	}

	for _, table := range rep.Categories {
		counts := table.Top(top)
		title := fmt.Sprintf("Top %d %s", len(counts), table.Field)

		bar := l.Plot(table.Field, report.KindBar)
		if err := render(bar, func() error { return r.charts.Bar(bar, title, counts) }); err != nil {
			return err
		}
		pie := l.Plot(table.Field, report.KindPie)
		if err := render(pie, func() error { return r.charts.Pie(pie, title, counts) }); err != nil {
			return err
		}
	}

	stacked := l.Plot(report.FieldYearPlatform, report.KindStacked)
	return render(stacked, func() error {
		return r.charts.YearPlatform(stacked, "Games per year by platform", rep.YearPlatform, top)
	})
}
