// Package charts renders report tables as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/icco/gamereport/lib/types"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// OtherLabel collects platforms beyond the stacked chart's limit.
const OtherLabel = "Other"

// ErrNoData is returned for tables with nothing to plot.
var ErrNoData = errors.New("no data to plot")

// legendReserve is the width kept free on the right for legends.
const legendReserve = 280

// titleBandHeight is the strip above a pie that holds its title.
const titleBandHeight = 40

// hiddenStyle draws nothing; used to pad bars up to the common maximum.
var hiddenStyle = chart.Style{
	FillColor:   drawing.ColorTransparent,
	StrokeColor: drawing.ColorTransparent,
	StrokeWidth: 0.1,
}

type Renderer struct {
	width  int
	height int
	logger *slog.Logger
}

func New(width, height int, logger *slog.Logger) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		logger: logger,
	}
}

// Bar renders a horizontal bar per entry, largest first at the top.
//
// go-chart has no horizontal bar chart; each bar is a horizontal stacked bar
// of the value plus an invisible remainder up to the largest value, which
// makes bar lengths proportional across the chart.
func (r *Renderer) Bar(path, title string, counts []types.Count) error {
	if len(counts) == 0 {
		return ErrNoData
	}

	largest := maxCount(counts)
	pitch := barPitch(r.height-100, len(counts))

	bars := make([]chart.StackedBar, 0, len(counts))
	for i, c := range counts {
		color := chart.GetDefaultColor(i)
		bars = append(bars, chart.StackedBar{
			Name:  c.Label,
			Width: barWidth(pitch),
			Values: []chart.Value{
				{Value: float64(largest - c.Count), Style: hiddenStyle},
				{
					Value: float64(c.Count),
					Label: strconv.Itoa(c.Count),
					Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
				},
			},
		})
	}

	ch := chart.StackedBarChart{
		Title:        title,
		Width:        r.width,
		Height:       r.height,
		IsHorizontal: true,
		BarSpacing:   max(pitch/4, 1),
		Background:   chart.Style{Padding: chart.Box{Top: 50, Left: r.width / 4, Right: 30, Bottom: 50}},
		XAxis:        chart.Hidden(),
		Bars:         bars,
	}

	r.logger.Debug("Rendering bar chart", slog.String("path", path), slog.Int("bars", len(bars)))
	return save(path, ch)
}

// Pie renders each entry's share of the plotted total with a legend of
// labels and percentages.
func (r *Renderer) Pie(path, title string, counts []types.Count) error {
	if len(counts) == 0 {
		return ErrNoData
	}

	ch := r.pieChart(title, counts)
	r.logger.Debug("Rendering pie chart", slog.String("path", path), slog.Int("slices", len(ch.Values)))
	return save(path, ch)
}

// pieChart lays out a pie below a title band. go-chart draws a pie's own
// title inside the pie's box, so it is hidden and drawn by titleBand instead.
func (r *Renderer) pieChart(title string, counts []types.Count) chart.PieChart {
	labels := LegendLabels(counts)
	shares := Shares(counts)
	values := make([]chart.Value, 0, len(counts))
	entries := make([]legendEntry, 0, len(counts))
	for i, c := range counts {
		color := chart.GetDefaultColor(i)
		values = append(values, chart.Value{
			Value: float64(c.Count),
			Label: fmt.Sprintf("%.1f%%", shares[i]),
			Style: chart.Style{FillColor: color},
		})
		entries = append(entries, legendEntry{label: labels[i], color: color})
	}

	return chart.PieChart{
		Title:      title,
		TitleStyle: chart.Hidden(),
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: titleBandHeight + 10, Left: 20, Right: legendReserve, Bottom: 20}},
		Values:     values,
		Elements:   []chart.Renderable{titleBand(title, r.width), legend(entries)},
	}
}

// YearPlatform renders one bar per year, stacked by platform. Only the
// maxPlatforms most common platforms get their own segment; the rest are
// summed into OtherLabel.
func (r *Renderer) YearPlatform(path, title string, ct types.CrossTab, maxPlatforms int) error {
	if len(ct.Rows) == 0 || len(ct.Columns) == 0 {
		return ErrNoData
	}

	columns, cells := FoldColumns(ct, maxPlatforms)

	largest := 0
	for i := range ct.Rows {
		largest = max(largest, ct.RowTotal(i))
	}
	pitch := barPitch(r.width-20-legendReserve, len(ct.Rows))

	bars := make([]chart.StackedBar, 0, len(ct.Rows))
	for i, year := range ct.Rows {
		total := ct.RowTotal(i)
		values := []chart.Value{{Value: float64(largest - total), Style: hiddenStyle}}
		for j, v := range cells[i] {
			color := chart.GetDefaultColor(j)
			values = append(values, chart.Value{
				Value: float64(v),
				Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
			})
		}
		bars = append(bars, chart.StackedBar{
			Name:   fmt.Sprintf("%s (%d)", year, total),
			Width:  barWidth(pitch),
			Values: values,
		})
	}

	entries := make([]legendEntry, 0, len(columns))
	for j, platform := range columns {
		entries = append(entries, legendEntry{label: platform, color: chart.GetDefaultColor(j)})
	}

	ch := chart.StackedBarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		BarSpacing: max(pitch/4, 1),
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: legendReserve, Bottom: 50}},
		YAxis:      chart.Hidden(),
		Bars:       bars,
		Elements:   []chart.Renderable{legend(entries)},
	}

	r.logger.Debug("Rendering stacked chart", slog.String("path", path), slog.Int("years", len(bars)), slog.Int("platforms", len(columns)))
	return save(path, ch)
}

// Shares returns each count as a percentage of the sum of counts.
func Shares(counts []types.Count) []float64 {
	var total int
	for _, c := range counts {
		total += c.Count
	}
	shares := make([]float64, len(counts))
	if total == 0 {
		return shares
	}
	for i, c := range counts {
		shares[i] = float64(c.Count) * 100 / float64(total)
	}
	return shares
}

// LegendLabels formats "label (xx.x%)" for every entry.
func LegendLabels(counts []types.Count) []string {
	shares := Shares(counts)
	labels := make([]string, len(counts))
	for i, c := range counts {
		labels[i] = fmt.Sprintf("%s (%.1f%%)", c.Label, shares[i])
	}
	return labels
}

// FoldColumns keeps the first limit columns of ct and sums the remainder into
// a trailing OtherLabel column. Columns are assumed ordered by importance.
func FoldColumns(ct types.CrossTab, limit int) ([]string, [][]int) {
	if limit <= 0 || len(ct.Columns) <= limit {
		return ct.Columns, ct.Cells
	}

	columns := append(append([]string{}, ct.Columns[:limit]...), OtherLabel)
	cells := make([][]int, len(ct.Cells))
	for i, row := range ct.Cells {
		folded := make([]int, limit+1)
		copy(folded, row[:limit])
		for _, v := range row[limit:] {
			folded[limit] += v
		}
		cells[i] = folded
	}
	return columns, cells
}

// titleBand draws title centered in the top titleBandHeight pixels.
func titleBand(title string, width int) chart.Renderable {
	return func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
		style := chart.Style{
			FontSize:            16,
			FontColor:           chart.DefaultTextColor,
			TextHorizontalAlign: chart.TextHorizontalAlignCenter,
			TextVerticalAlign:   chart.TextVerticalAlignMiddle,
		}.InheritFrom(defaults)
		chart.Draw.TextWithin(r, title, chart.Box{Top: 0, Left: 0, Right: width, Bottom: titleBandHeight}, style)
	}
}

type legendEntry struct {
	label string
	color drawing.Color
}

// legend draws a swatch and label per entry to the right of the canvas.
func legend(entries []legendEntry) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		textStyle := chart.Style{
			FontSize:  10,
			FontColor: chart.DefaultTextColor,
		}.InheritFrom(defaults)

		x := canvasBox.Right + 20
		y := canvasBox.Top
		for _, e := range entries {
			swatch := chart.Box{Top: y, Left: x, Right: x + 12, Bottom: y + 12}
			chart.Draw.Box(r, swatch, chart.Style{FillColor: e.color, StrokeColor: e.color, StrokeWidth: 1})
			chart.Draw.Text(r, e.label, x+18, y+11, textStyle)
			y += 18
		}
	}
}

type pngChart interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func save(path string, ch pngChart) error {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func barPitch(space, n int) int {
	if n <= 0 {
		return 1
	}
	return max(space/n, 4)
}

// barWidth leaves a quarter of the pitch as spacing. Never zero, since
// go-chart treats a zero width as its 50px default.
func barWidth(pitch int) int {
	return max(pitch*3/4, 1)
}

func maxCount(counts []types.Count) int {
	var m int
	for _, c := range counts {
		m = max(m, c.Count)
	}
	return m
}
