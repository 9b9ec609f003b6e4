// Package stats groups, counts and sorts game records for reports.
package stats

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/icco/gamereport/lib/types"
	"github.com/icco/gamereport/lib/validation"
	"github.com/icco/gamereport/models"
)

// Field names used for count tables and their output files.
const (
	FieldDeveloper = "developer"
	FieldPublisher = "publisher"
	FieldPlatform  = "platformName"
	FieldGenre     = "genre"
)

// CategoryFields lists the count tables of a report, in output order.
var CategoryFields = []string{FieldDeveloper, FieldPublisher, FieldPlatform, FieldGenre}

// DefaultTagDelimiters separate entries of a game's tagsStr.
const DefaultTagDelimiters = ";,"

type Aggregator struct {
	tagDelimiters string
	logger        *slog.Logger
}

func New(tagDelimiters string, logger *slog.Logger) *Aggregator {
	if tagDelimiters == "" {
		tagDelimiters = DefaultTagDelimiters
	}
	return &Aggregator{
		tagDelimiters: tagDelimiters,
		logger:        logger,
	}
}

// Aggregate computes every table of a report over games.
func (a *Aggregator) Aggregate(name string, games []models.Game) (*types.Report, error) {
	dated, err := ReleaseDates(games)
	if err != nil {
		return nil, err
	}

	report := &types.Report{
		Name:       name,
		TotalGames: len(games),
		Categories: []types.CountTable{
			Counts(FieldDeveloper, column(games, func(g models.Game) string { return g.Developer })),
			Counts(FieldPublisher, column(games, func(g models.Game) string { return g.Publisher })),
			Counts(FieldPlatform, column(games, func(g models.Game) string { return g.PlatformName })),
			Genres(games, a.tagDelimiters),
		},
		ReleaseDates: dated,
		Playtime:     Playtime(games),
		YearPlatform: YearPlatform(dated),
	}

	for _, t := range report.Categories {
		a.logger.Debug("Counted field",
			slog.String("report", name),
			slog.String("field", t.Field),
			slog.Int("distinct", len(t.Counts)),
			slog.Int("total", t.Total()))
	}
	a.logger.Debug("Sorted listings",
		slog.String("report", name),
		slog.Int("dated", len(report.ReleaseDates)),
		slog.Int("playtime", len(report.Playtime)),
		slog.Int("years", len(report.YearPlatform.Rows)))

	return report, nil
}

// Counts tallies non-empty values, most frequent first. Ties keep the order
// in which values were first seen.
func Counts(field string, values []string) types.CountTable {
	index := make(map[string]int)
	var counts []types.Count
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, types.Count{Label: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return types.CountTable{Field: field, Counts: counts}
}

// SplitTags splits a tag list on any rune of delims, dropping blanks.
func SplitTags(s, delims string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})
	tags := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Genres explodes each game's tag list and counts individual tags.
func Genres(games []models.Game, delims string) types.CountTable {
	var tags []string
	for _, g := range games {
		tags = append(tags, SplitTags(g.TagsStr, delims)...)
	}
	return Counts(FieldGenre, tags)
}

// ReleaseDates returns games with a release date, normalized and sorted
// oldest first. A date that cannot be parsed fails the whole listing.
func ReleaseDates(games []models.Game) ([]types.DatedGame, error) {
	var dated []types.DatedGame
	for _, g := range games {
		if strings.TrimSpace(g.ReleaseDate) == "" {
			continue
		}
		parsed, err := validation.ParseReleaseDate(g.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("game %s (%s): %w", g.ID, g.Title, err)
		}
		dated = append(dated, types.DatedGame{
			Game: g,
			Date: parsed.Format(validation.DateLayout),
			Year: parsed.Year(),
		})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date < dated[j].Date
	})
	return dated, nil
}

// Playtime returns games with a release date, longest played first.
func Playtime(games []models.Game) []models.Game {
	var played []models.Game
	for _, g := range games {
		if strings.TrimSpace(g.ReleaseDate) == "" {
			continue
		}
		played = append(played, g)
	}

	sort.SliceStable(played, func(i, j int) bool {
		return played[i].Playtime > played[j].Playtime
	})
	return played
}

// YearPlatform cross-tabulates dated games by release year and platform.
// Years ascend; platforms are ordered by overall count, most common first.
// Games without a platform are left out.
func YearPlatform(dated []types.DatedGame) types.CrossTab {
	var platforms []string
	for _, d := range dated {
		platforms = append(platforms, d.Game.PlatformName)
	}
	platformTable := Counts(FieldPlatform, platforms)

	col := make(map[string]int, len(platformTable.Counts))
	columns := make([]string, 0, len(platformTable.Counts))
	for i, c := range platformTable.Counts {
		col[c.Label] = i
		columns = append(columns, c.Label)
	}

	byYear := make(map[int][]int)
	var years []int
	for _, d := range dated {
		j, ok := col[strings.TrimSpace(d.Game.PlatformName)]
		if !ok {
			continue
		}
		cells, ok := byYear[d.Year]
		if !ok {
			cells = make([]int, len(columns))
			byYear[d.Year] = cells
			years = append(years, d.Year)
		}
		cells[j]++
	}
	sort.Ints(years)

	ct := types.CrossTab{Columns: columns}
	for _, y := range years {
		ct.Rows = append(ct.Rows, strconv.Itoa(y))
		ct.Cells = append(ct.Cells, byYear[y])
	}
	return ct
}

func column(games []models.Game, get func(models.Game) string) []string {
	values := make([]string, len(games))
	for i, g := range games {
		values[i] = get(g)
	}
	return values
}
