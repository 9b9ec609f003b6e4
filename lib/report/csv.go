package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/icco/gamereport/lib/types"
	"github.com/icco/gamereport/models"
)

// RecordHeader is the header of game listings.
var RecordHeader = []string{"id", "title", "developer", "publisher", "platformName", "releaseDate", "playtime", "library"}

// WriteCounts writes a count table with the category label as index column.
func WriteCounts(path string, table types.CountTable) error {
	rows := make([][]string, 0, len(table.Counts)+1)
	rows = append(rows, []string{table.Field, "count"})
	for _, c := range table.Counts {
		rows = append(rows, []string{c.Label, strconv.Itoa(c.Count)})
	}
	return writeCSV(path, rows)
}

// WriteRecords writes a game listing without an index column.
func WriteRecords(path string, games []models.Game) error {
	rows := make([][]string, 0, len(games)+1)
	rows = append(rows, RecordHeader)
	for _, g := range games {
		rows = append(rows, recordRow(g, g.ReleaseDate))
	}
	return writeCSV(path, rows)
}

// WriteDated writes the release date listing using the normalized dates.
func WriteDated(path string, dated []types.DatedGame) error {
	rows := make([][]string, 0, len(dated)+1)
	rows = append(rows, RecordHeader)
	for _, d := range dated {
		rows = append(rows, recordRow(d.Game, d.Date))
	}
	return writeCSV(path, rows)
}

// WriteCrossTab writes a year by platform table with the year as index.
func WriteCrossTab(path string, ct types.CrossTab) error {
	rows := make([][]string, 0, len(ct.Rows)+1)
	rows = append(rows, append([]string{"year"}, ct.Columns...))
	for i, year := range ct.Rows {
		row := make([]string, 0, len(ct.Columns)+1)
		row = append(row, year)
		for _, v := range ct.Cells[i] {
			row = append(row, strconv.Itoa(v))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, rows)
}

// ReadCounts reads a table written by WriteCounts.
func ReadCounts(path string) ([]types.Count, error) {
	// #nosec G304 - path points into a report directory
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var counts []types.Count
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("invalid count for %q in %s: %w", record[0], path, err)
		}
		counts = append(counts, types.Count{Label: record[0], Count: n})
	}
	return counts, nil
}

func recordRow(g models.Game, releaseDate string) []string {
	return []string{
		g.ID,
		g.Title,
		g.Developer,
		g.Publisher,
		g.PlatformName,
		releaseDate,
		strconv.FormatInt(g.Playtime, 10),
		g.Library,
	}
}

func writeCSV(path string, rows [][]string) error {
	// #nosec G304 - path is built by Layout
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
