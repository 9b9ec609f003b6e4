package report

import (
	"fmt"
	"os"
	"slices"

	"github.com/icco/gamereport/lib/report/templates"
	"github.com/icco/gamereport/lib/types"
)

type indexSection struct {
	Field    string
	CSV      string
	Distinct int
	Total    int
	Top      []types.Count
	Plots    []string
}

type indexData struct {
	Name       string
	TotalGames int
	Dated      int
	Sections   []indexSection
	Listings   []string
	ExtraPlots []string
}

// WriteIndex renders index.html linking the tables and charts in written.
// Files not in written are left out, so skipped charts leave no broken links.
func WriteIndex(l Layout, r *types.Report, top int, written []string) error {
	has := func(path string) bool { return slices.Contains(written, path) }

	data := indexData{
		Name:       r.Name,
		TotalGames: r.TotalGames,
		Dated:      len(r.ReleaseDates),
	}
	for _, t := range r.Categories {
		section := indexSection{
			Field:    t.Field,
			CSV:      l.Rel(l.CSV(t.Field)),
			Distinct: len(t.Counts),
			Total:    t.Total(),
			Top:      t.Top(top),
		}
		for _, kind := range []string{KindBar, KindPie} {
			if p := l.Plot(t.Field, kind); has(p) {
				section.Plots = append(section.Plots, l.Rel(p))
			}
		}
		data.Sections = append(data.Sections, section)
	}
	for _, field := range []string{FieldReleaseDate, FieldPlaytime, FieldYearPlatform} {
		if p := l.CSV(field); has(p) {
			data.Listings = append(data.Listings, l.Rel(p))
		}
	}
	if p := l.Plot(FieldYearPlatform, KindStacked); has(p) {
		data.ExtraPlots = append(data.ExtraPlots, l.Rel(p))
	}

	tmpl, err := templates.ParseTemplates("index.html")
	if err != nil {
		return fmt.Errorf("failed to parse index template: %w", err)
	}

	// #nosec G304 - path is built by Layout
	f, err := os.Create(l.Index())
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if err := tmpl.ExecuteTemplate(f, "index", data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to execute index template: %w", err)
	}
	return f.Close()
}
