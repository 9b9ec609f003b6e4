package stats

import (
	"io"
	"log/slog"
	"testing"

	"github.com/icco/gamereport/lib/types"
	"github.com/icco/gamereport/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureGames() []models.Game {
	return []models.Game{
		{ID: "1", Title: "One", Developer: "Nitrome", Publisher: "Kongregate", PlatformName: "Flash", ReleaseDate: "2009", Playtime: 120, TagsStr: "Action; Platformer"},
		{ID: "2", Title: "Two", Developer: "Armor", Publisher: "Armor", PlatformName: "Flash", ReleaseDate: "2010-03-04", Playtime: 3600, TagsStr: "Puzzle"},
		{ID: "3", Title: "Three", Developer: "Nitrome", Publisher: "", PlatformName: "Shockwave", ReleaseDate: "", Playtime: 9999, TagsStr: "Action,Puzzle"},
		{ID: "4", Title: "Four", Developer: "  ", Publisher: "Kongregate", PlatformName: "HTML5", ReleaseDate: "2009-07", Playtime: 0, TagsStr: ""},
	}
}

func TestCounts(t *testing.T) {
	table := Counts(FieldDeveloper, []string{"b", "a", "", "a", " c ", "b", "d"})

	assert.Equal(t, FieldDeveloper, table.Field)
	assert.Equal(t, []types.Count{
		{Label: "b", Count: 2},
		{Label: "a", Count: 2},
		{Label: "c", Count: 1},
		{Label: "d", Count: 1},
	}, table.Counts)
	assert.Equal(t, 6, table.Total(), "counts sum to the non-empty values")
}

func TestCountsEmpty(t *testing.T) {
	table := Counts(FieldPublisher, []string{"", " "})
	assert.Empty(t, table.Counts)
	assert.Zero(t, table.Total())
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"Action", "Puzzle"}, SplitTags("Action,Puzzle", DefaultTagDelimiters))
	assert.Equal(t, []string{"Action", "Puzzle", "Arcade"}, SplitTags("Action; Puzzle;;Arcade ", DefaultTagDelimiters))
	assert.Equal(t, []string{"Action,Puzzle"}, SplitTags("Action,Puzzle", ";"))
	assert.Empty(t, SplitTags("", DefaultTagDelimiters))
}

func TestGenresCountEachTag(t *testing.T) {
	table := Genres([]models.Game{{TagsStr: "Action,Puzzle"}}, DefaultTagDelimiters)

	assert.Equal(t, FieldGenre, table.Field)
	assert.Equal(t, []types.Count{
		{Label: "Action", Count: 1},
		{Label: "Puzzle", Count: 1},
	}, table.Counts)
}

func TestReleaseDates(t *testing.T) {
	dated, err := ReleaseDates(fixtureGames())
	require.NoError(t, err)

	require.Len(t, dated, 3)
	assert.Equal(t, "2009-01-01", dated[0].Date)
	assert.Equal(t, "1", dated[0].Game.ID)
	assert.Equal(t, "2009-07-01", dated[1].Date)
	assert.Equal(t, "2010-03-04", dated[2].Date)
	assert.Equal(t, 2010, dated[2].Year)
}

func TestReleaseDatesInvalid(t *testing.T) {
	_, err := ReleaseDates([]models.Game{{ID: "bad", Title: "Broken", ReleaseDate: "someday"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestPlaytime(t *testing.T) {
	played := Playtime(fixtureGames())

	got := make([]string, len(played))
	for i, g := range played {
		got[i] = g.ID
	}
	assert.Equal(t, []string{"2", "1", "4"}, got, "undated games are left out")
}

func TestYearPlatform(t *testing.T) {
	dated, err := ReleaseDates([]models.Game{
		{ID: "1", PlatformName: "Flash", ReleaseDate: "2010"},
		{ID: "2", PlatformName: "HTML5", ReleaseDate: "2008"},
		{ID: "3", PlatformName: "Flash", ReleaseDate: "2008"},
		{ID: "4", PlatformName: "Flash", ReleaseDate: "2010-05-01"},
		{ID: "5", PlatformName: "", ReleaseDate: "2012"},
	})
	require.NoError(t, err)

	ct := YearPlatform(dated)
	assert.Equal(t, []string{"Flash", "HTML5"}, ct.Columns)
	assert.Equal(t, []string{"2008", "2010"}, ct.Rows)
	assert.Equal(t, [][]int{{1, 1}, {2, 0}}, ct.Cells)
	assert.Equal(t, 2, ct.RowTotal(0))
}

func TestAggregate(t *testing.T) {
	a := New(DefaultTagDelimiters, slog.New(slog.NewTextHandler(io.Discard, nil)))

	report, err := a.Aggregate("favorites", fixtureGames())
	require.NoError(t, err)

	assert.Equal(t, "favorites", report.Name)
	assert.Equal(t, 4, report.TotalGames)
	require.Len(t, report.Categories, len(CategoryFields))
	for i, field := range CategoryFields {
		assert.Equal(t, field, report.Categories[i].Field)
	}

	dev, ok := report.Category(FieldDeveloper)
	require.True(t, ok)
	assert.Equal(t, types.Count{Label: "Nitrome", Count: 2}, dev.Counts[0])
	assert.Equal(t, 3, dev.Total())

	pub, _ := report.Category(FieldPublisher)
	assert.Equal(t, 3, pub.Total())

	genre, _ := report.Category(FieldGenre)
	assert.Equal(t, []types.Count{
		{Label: "Action", Count: 2},
		{Label: "Puzzle", Count: 2},
		{Label: "Platformer", Count: 1},
	}, genre.Counts)

	assert.Len(t, report.ReleaseDates, 3)
	assert.Len(t, report.Playtime, 3)
	assert.Equal(t, []string{"2009", "2010"}, report.YearPlatform.Rows)
}
