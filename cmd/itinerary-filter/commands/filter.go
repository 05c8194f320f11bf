package commands

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/itinerary-filter/config"
	"github.com/theoremus-urban-solutions/itinerary-filter/filter"
	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
	"github.com/theoremus-urban-solutions/itinerary-filter/formatter"
)

type filterFlags struct {
	departAfter   string
	maxGround     int
	chronological bool
	workers       int
}

// NewFilterCommand applies the configured predicates to the selected source.
func NewFilterCommand(opts *Options) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter itineraries with the configured predicates",
		Long: `Filter loads itineraries from the selected source and keeps those matching
every predicate, in source order. Flags override the filter section of the config.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			fc := cfg.Filter
			if cmd.Flags().Changed("depart-after") {
				fc.DepartAfter = flags.departAfter
			}
			if cmd.Flags().Changed("max-ground") {
				fc.MaxGroundMinutes = flags.maxGround
			}
			if cmd.Flags().Changed("chronological") {
				fc.ChronologicalOnly = flags.chronological
			}
			if cmd.Flags().Changed("workers") {
				fc.Workers = flags.workers
			}

			now := opts.now()
			preds, err := predicates(fc, now)
			if err != nil {
				return err
			}

			src, err := loadSource(cmd.Context(), cfg.SelectFeed(opts.Feed), now)
			if err != nil {
				return err
			}

			start := time.Now()
			var kept []flight.Itinerary
			if fc.Workers > 1 {
				kept, err = filter.ParallelFilter(cmd.Context(), src.items, filter.And(preds...), fc.Workers)
			} else {
				kept, err = filter.FilterAll(src.items, preds)
			}
			if err != nil {
				return err
			}
			log.Printf("filter: kept %d of %d itineraries in %s", len(kept), len(src.items), time.Since(start))

			return formatter.Render(cmd.OutOrStdout(), cfg.Output.Format, formatter.RowsFromItineraries(kept, keptIDs(src, kept)), now)
		},
	}

	cmd.Flags().StringVar(&flags.departAfter, "depart-after", "", "keep itineraries departing after now|now+<duration>|RFC3339")
	cmd.Flags().IntVar(&flags.maxGround, "max-ground", 0, "keep itineraries with ground time below this many minutes (0 disables)")
	cmd.Flags().BoolVar(&flags.chronological, "chronological", false, "drop itineraries with segments arriving before they depart")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "evaluate predicates on this many goroutines")

	return cmd
}

// predicates builds the predicate list in a fixed order: departure,
// chronology, ground time.
func predicates(fc config.FilterConfig, now time.Time) ([]filter.Predicate, error) {
	var preds []filter.Predicate
	if fc.DepartAfter != "" {
		t, err := config.ParseDepartAfter(fc.DepartAfter, now)
		if err != nil {
			return nil, err
		}
		preds = append(preds, filter.DepartsAfter(t))
	}
	if fc.ChronologicalOnly {
		preds = append(preds, filter.Chronological())
	}
	if fc.MaxGroundMinutes > 0 {
		preds = append(preds, filter.GroundTimeBelow(fc.MaxGroundMinutes))
	}
	return preds, nil
}

// keptIDs recovers the labels of kept itineraries.
func keptIDs(src source, kept []flight.Itinerary) []string {
	if len(src.ids) != len(src.items) {
		return nil
	}
	pos := positions(src.items, kept)
	if len(pos) != len(kept) {
		return nil
	}
	ids := make([]string, len(pos))
	for i, p := range pos {
		ids[i] = src.ids[p]
	}
	return ids
}

// positions locates kept in items. Filter output is an order-preserving
// subsequence of its input, so one forward scan suffices.
func positions(items, kept []flight.Itinerary) []int {
	out := make([]int, 0, len(kept))
	j := 0
	for _, k := range kept {
		for j < len(items) && !items[j].Equal(k) {
			j++
		}
		if j == len(items) {
			break
		}
		out = append(out, j)
		j++
	}
	return out
}
