package types

import "github.com/icco/gamereport/models"

// Count is one category value and how often it occurred.
type Count struct {
	Label string
	Count int
}

// CountTable is a frequency table for one field, sorted descending by count.
type CountTable struct {
	Field  string
	Counts []Count
}

// Total returns the sum of all counts in the table.
func (t CountTable) Total() int {
	var n int
	for _, c := range t.Counts {
		n += c.Count
	}
	return n
}

// Top returns at most n leading entries.
func (t CountTable) Top(n int) []Count {
	if n <= 0 || n >= len(t.Counts) {
		return t.Counts
	}
	return t.Counts[:n]
}

// DatedGame is a game whose release date was normalized to YYYY-MM-DD.
type DatedGame struct {
	Game models.Game
	Date string
	Year int
}

// CrossTab counts games by year (rows) and platform (columns).
type CrossTab struct {
	Rows    []string
	Columns []string
	Cells   [][]int
}

// RowTotal returns the number of games counted in row i.
func (c CrossTab) RowTotal(i int) int {
	var n int
	for _, v := range c.Cells[i] {
		n += v
	}
	return n
}

// Report is everything computed for one named set of games.
type Report struct {
	Name         string
	TotalGames   int
	Categories   []CountTable
	ReleaseDates []DatedGame
	Playtime     []models.Game
	YearPlatform CrossTab
}

// Category returns the count table for field, if present.
func (r *Report) Category(field string) (CountTable, bool) {
	for _, t := range r.Categories {
		if t.Field == field {
			return t, true
		}
	}
	return CountTable{}, false
}
