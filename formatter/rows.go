package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
	"github.com/theoremus-urban-solutions/itinerary-filter/index"
	"github.com/theoremus-urban-solutions/itinerary-filter/keys"
	"github.com/theoremus-urban-solutions/itinerary-filter/utils"
)

// Row is one rendered itinerary. Key is set for index query results.
type Row struct {
	ID        string
	Key       *int64
	Itinerary flight.Itinerary
}

// RowsFromItineraries labels items with ids when ids is parallel to items.
func RowsFromItineraries(items []flight.Itinerary, ids []string) []Row {
	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{ID: label(ids, i), Itinerary: it}
	}
	return rows
}

// RowsFromEntries converts index entries. ids refers to the collection the
// index was built from; the entry ordinal locates the id.
func RowsFromEntries(entries []index.Entry, ids []string) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		key := e.Key
		rows[i] = Row{
			ID:        label(ids, int(keys.Ordinal(e.Key))-1),
			Key:       &key,
			Itinerary: e.Itinerary,
		}
	}
	return rows
}

func label(ids []string, i int) string {
	if i >= 0 && i < len(ids) {
		return ids[i]
	}
	return ""
}

type segmentRecord struct {
	Departure string `json:"departure" yaml:"departure"`
	Arrival   string `json:"arrival" yaml:"arrival"`
}

type record struct {
	ID            string          `json:"id,omitempty" yaml:"id,omitempty"`
	Key           *int64          `json:"key,omitempty" yaml:"key,omitempty"`
	Departure     string          `json:"departure" yaml:"departure"`
	Arrival       string          `json:"arrival" yaml:"arrival"`
	Chronological bool            `json:"chronological" yaml:"chronological"`
	GroundMinutes int             `json:"groundMinutes" yaml:"groundMinutes"`
	Segments      []segmentRecord `json:"segments" yaml:"segments"`
}

type characteristics struct {
	departure     time.Time
	arrival       time.Time
	chronological bool
	groundMinutes int
}

func compute(r Row) (characteristics, error) {
	var c characteristics
	var err error
	if c.departure, err = r.Itinerary.DepartureTime(); err != nil {
		return c, err
	}
	if c.arrival, err = r.Itinerary.ArrivalTime(); err != nil {
		return c, err
	}
	if c.chronological, err = r.Itinerary.IsChronological(); err != nil {
		return c, err
	}
	if c.groundMinutes, err = r.Itinerary.GroundTime(); err != nil {
		return c, err
	}
	return c, nil
}

func records(rows []Row) ([]record, error) {
	out := make([]record, 0, len(rows))
	for i, r := range rows {
		c, err := compute(r)
		if err != nil {
			return nil, fmt.Errorf("render row %d: %w", i, err)
		}
		segs := r.Itinerary.Segments()
		rec := record{
			ID:            r.ID,
			Key:           r.Key,
			Departure:     utils.Iso8601(c.departure),
			Arrival:       utils.Iso8601(c.arrival),
			Chronological: c.chronological,
			GroundMinutes: c.groundMinutes,
			Segments:      make([]segmentRecord, len(segs)),
		}
		for j, s := range segs {
			rec.Segments[j] = segmentRecord{
				Departure: utils.Iso8601(s.Departure),
				Arrival:   utils.Iso8601(s.Arrival),
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// Render writes rows in the given format: text, json or yaml.
func Render(w io.Writer, format string, rows []Row, now time.Time) error {
	switch format {
	case "", "text":
		return NewTextRenderer(now).Render(w, rows)
	case "json":
		return RenderJSON(w, rows)
	case "yaml":
		return RenderYAML(w, rows)
	}
	return fmt.Errorf("unknown output format %q", format)
}
