// Package report writes computed reports to disk.
package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Chart kinds used in plot file names.
const (
	KindBar     = "bar"
	KindPie     = "pie"
	KindStacked = "stacked"
)

// Names of the listing tables, which sit next to the count tables.
const (
	FieldReleaseDate  = "releaseDate"
	FieldPlaytime     = "playtime"
	FieldYearPlatform = "year_platform"
)

// Layout is the directory tree of one report:
//
//	<base>/<name>/csv/<field>.csv
//	<base>/<name>/plots/<field>_<kind>.png
//	<base>/<name>/index.html
type Layout struct {
	Root string
}

// NewLayout returns the layout of report name under base.
func NewLayout(base, name string) Layout {
	return Layout{Root: filepath.Join(base, name)}
}

func (l Layout) CSVDir() string {
	return filepath.Join(l.Root, "csv")
}

func (l Layout) PlotsDir() string {
	return filepath.Join(l.Root, "plots")
}

// CSV returns the path of the table for field.
func (l Layout) CSV(field string) string {
	return filepath.Join(l.CSVDir(), field+".csv")
}

// Plot returns the path of the chart of the given kind for field.
func (l Layout) Plot(field, kind string) string {
	return filepath.Join(l.PlotsDir(), fmt.Sprintf("%s_%s.png", field, kind))
}

func (l Layout) Index() string {
	return filepath.Join(l.Root, "index.html")
}

// Prepare creates the report directories. Existing files are left to be
// overwritten.
func (l Layout) Prepare() error {
	for _, dir := range []string{l.CSVDir(), l.PlotsDir()} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	return nil
}

// Rel returns path relative to the report root, with forward slashes.
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
