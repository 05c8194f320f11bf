package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/itinerary-filter/filter"
	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
	"github.com/theoremus-urban-solutions/itinerary-filter/formatter"
	"github.com/theoremus-urban-solutions/itinerary-filter/index"
	"github.com/theoremus-urban-solutions/itinerary-filter/keys"
)

const demoMaxGround = 120

// NewDemoCommand walks through the filtering and indexing scenarios on the
// selected source: departures after now, chronological itineraries, ground
// time under two hours, their conjunction, and the same selections through
// ordered indexes.
func NewDemoCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the standard filtering and indexing scenarios",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			now := opts.now()
			src, err := loadSource(cmd.Context(), cfg.SelectFeed(opts.Feed), now)
			if err != nil {
				return err
			}
			d := demo{w: cmd.OutOrStdout(), format: cfg.Output.Format, src: src, opts: opts}
			return d.run()
		},
	}
}

type demo struct {
	w      io.Writer
	format string
	src    source
	opts   *Options
}

func (d demo) section(title string, items []flight.Itinerary) error {
	if _, err := fmt.Fprintf(d.w, "\n%s\n", title); err != nil {
		return err
	}
	return formatter.Render(d.w, d.format, formatter.RowsFromItineraries(items, keptIDs(d.src, items)), d.opts.now())
}

func (d demo) entries(title string, entries []index.Entry) error {
	if _, err := fmt.Fprintf(d.w, "\n%s\n", title); err != nil {
		return err
	}
	return formatter.Render(d.w, d.format, formatter.RowsFromEntries(entries, d.src.ids), d.opts.now())
}

func (d demo) run() error {
	now := d.opts.now()
	items := d.src.items
	afterNow := filter.DepartsAfter(now)
	quick := filter.GroundTimeBelow(demoMaxGround)

	if err := d.section("Source itineraries", items); err != nil {
		return err
	}

	steps := []struct {
		title string
		pred  filter.Predicate
	}{
		{"Departing after now", afterNow},
		{"Without segments arriving before departure", filter.Chronological()},
		{"Ground time under two hours", quick},
		{"With segments arriving before departure", filter.Not(filter.Chronological())},
		{"Departed already or ground time under two hours", filter.Or(filter.Not(afterNow), quick)},
	}
	for _, s := range steps {
		kept, err := filter.Filter(items, s.pred)
		if err != nil {
			return err
		}
		if err := d.section(s.title, kept); err != nil {
			return err
		}
	}

	kept, err := filter.FilterAll(items, []filter.Predicate{afterNow, filter.Chronological(), quick})
	if err != nil {
		return err
	}
	if err := d.section("All conditions", kept); err != nil {
		return err
	}

	byDeparture, err := index.Build(items, index.ByDepartureTime)
	if err != nil {
		return err
	}
	upcoming, err := byDeparture.RangeFrom(keys.TimestampKey(now))
	if err != nil {
		return err
	}
	if err := d.entries("Departure index: departing from now", upcoming); err != nil {
		return err
	}

	byGround, err := index.Build(items, index.ByGroundTime)
	if err != nil {
		return err
	}
	if first, ok := byGround.First(); ok {
		last, _ := byGround.Last()
		if _, err := fmt.Fprintf(d.w, "\nGround time index: %d entries, %d to %d minutes\n",
			byGround.Len(), keys.Value(first.Key), keys.Value(last.Key)); err != nil {
			return err
		}
	}
	short, err := byGround.RangeBefore(keys.IntegerKey(demoMaxGround))
	if err != nil {
		return err
	}
	if err := d.entries("Ground time index: under two hours", short); err != nil {
		return err
	}

	rest, err := filterEntries(short, filter.And(afterNow, filter.Chronological()))
	if err != nil {
		return err
	}
	return d.entries("Ground time index, then remaining conditions", rest)
}
