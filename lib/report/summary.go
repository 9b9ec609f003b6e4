package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cheynewallace/tabby"
	"github.com/icco/gamereport/lib/types"
)

// Summary prints one line per count table with its leader, followed by the
// date range and most played game.
func Summary(w io.Writer, r *types.Report) {
	t := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))

	t.AddHeader(r.Name, "DISTINCT", "TOP", "COUNT")
	t.AddLine("games", r.TotalGames, "", "")
	for _, table := range r.Categories {
		top, count := "-", 0
		if len(table.Counts) > 0 {
			top, count = table.Counts[0].Label, table.Counts[0].Count
		}
		t.AddLine(table.Field, len(table.Counts), top, count)
	}
	if n := len(r.ReleaseDates); n > 0 {
		t.AddLine("released", n, fmt.Sprintf("%s .. %s", r.ReleaseDates[0].Date, r.ReleaseDates[n-1].Date), "")
	}
	if len(r.Playtime) > 0 {
		g := r.Playtime[0]
		t.AddLine("most played", "", g.Title, (time.Duration(g.Playtime) * time.Second).String())
	}
	t.Print()
}
