package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/theoremus-urban-solutions/itinerary-filter/utils"
)

// TextRenderer prints rows as a console table. Departures are shown both
// as timestamps and relative to Now.
type TextRenderer struct {
	Now time.Time
}

func NewTextRenderer(now time.Time) *TextRenderer {
	return &TextRenderer{Now: now}
}

// Render writes one line per itinerary.
func (r *TextRenderer) Render(w io.Writer, rows []Row) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Format.Footer = text.FormatDefault

	tbl.AppendHeader(table.Row{"#", "ID", "Key", "Departure", "Departs", "Segments", "Chronological", "Ground time"})
	for i, row := range rows {
		c, err := compute(row)
		if err != nil {
			return fmt.Errorf("render row %d: %w", i, err)
		}
		key := ""
		if row.Key != nil {
			key = humanize.Comma(*row.Key)
		}
		tbl.AppendRow(table.Row{
			i + 1,
			row.ID,
			key,
			utils.Iso8601(c.departure),
			humanize.RelTime(c.departure, r.Now, "ago", "from now"),
			row.Itinerary.String(),
			c.chronological,
			(time.Duration(c.groundMinutes) * time.Minute).String(),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d itineraries", len(rows))})
	tbl.Render()
	return nil
}
