package commands

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/itinerary-filter/config"
	"github.com/theoremus-urban-solutions/itinerary-filter/filter"
	"github.com/theoremus-urban-solutions/itinerary-filter/formatter"
	"github.com/theoremus-urban-solutions/itinerary-filter/index"
	"github.com/theoremus-urban-solutions/itinerary-filter/keys"
)

type indexFlags struct {
	by            string
	from          string
	before        string
	chronological bool
	departAfter   string
}

// NewIndexCommand builds an ordered index and runs one range query on it.
func NewIndexCommand(opts *Options) *cobra.Command {
	var flags indexFlags

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Query an ordered index over a characteristic",
		Long: `Index builds an ordered index keyed by departure time or ground time and
returns the entries in [--from, --before). Bounds are now|now+<duration>|RFC3339
for departure and minutes for ground. Conditions without an index can be
applied to the range result with --chronological and --depart-after.`,
		Example: `  itinerary-filter index --by departure --from now
  itinerary-filter index --by ground --before 120 --chronological`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			now := opts.now()

			keyFn, bound, err := keyFunction(flags.by, now)
			if err != nil {
				return err
			}
			src, err := loadSource(cmd.Context(), cfg.SelectFeed(opts.Feed), now)
			if err != nil {
				return err
			}

			start := time.Now()
			idx, err := index.Build(src.items, keyFn)
			if err != nil {
				return err
			}
			log.Printf("index: built %d entries by %s in %s", idx.Len(), flags.by, time.Since(start))
			if first, ok := idx.First(); ok {
				last, _ := idx.Last()
				log.Printf("index: %s values span %d to %d", flags.by, keys.Value(first.Key), keys.Value(last.Key))
			}

			entries, err := query(idx, flags, bound)
			if err != nil {
				return err
			}

			var post []filter.Predicate
			if flags.departAfter != "" {
				t, err := config.ParseDepartAfter(flags.departAfter, now)
				if err != nil {
					return err
				}
				post = append(post, filter.DepartsAfter(t))
			}
			if flags.chronological {
				post = append(post, filter.Chronological())
			}
			if len(post) > 0 {
				entries, err = filterEntries(entries, filter.And(post...))
				if err != nil {
					return err
				}
			}

			return formatter.Render(cmd.OutOrStdout(), cfg.Output.Format, formatter.RowsFromEntries(entries, src.ids), now)
		},
	}

	cmd.Flags().StringVar(&flags.by, "by", "departure", "characteristic to index: departure|ground")
	cmd.Flags().StringVar(&flags.from, "from", "", "inclusive lower bound")
	cmd.Flags().StringVar(&flags.before, "before", "", "exclusive upper bound")
	cmd.Flags().BoolVar(&flags.chronological, "chronological", false, "post-filter: drop itineraries with inverted segments")
	cmd.Flags().StringVar(&flags.departAfter, "depart-after", "", "post-filter: keep itineraries departing after this time")

	return cmd
}

// keyFunction returns the index key function and a bound parser for by.
func keyFunction(by string, now time.Time) (index.KeyFunc, func(string) (int64, error), error) {
	switch by {
	case "departure":
		return index.ByDepartureTime, func(v string) (int64, error) {
			t, err := config.ParseDepartAfter(v, now)
			if err != nil {
				return 0, err
			}
			return keys.TimestampKey(t), nil
		}, nil
	case "ground":
		return index.ByGroundTime, func(v string) (int64, error) {
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0, fmt.Errorf("ground bound %q: %w", v, err)
			}
			return keys.IntegerKey(n), nil
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown index characteristic %q", by)
}

func query(idx *index.OrderedIndex, flags indexFlags, bound func(string) (int64, error)) ([]index.Entry, error) {
	var from, before int64
	var err error
	if flags.from != "" {
		if from, err = bound(flags.from); err != nil {
			return nil, err
		}
	}
	if flags.before != "" {
		if before, err = bound(flags.before); err != nil {
			return nil, err
		}
	}
	switch {
	case flags.from != "" && flags.before != "":
		return idx.Range(from, before)
	case flags.from != "":
		return idx.RangeFrom(from)
	case flags.before != "":
		return idx.RangeBefore(before)
	}
	return idx.Entries()
}

// filterEntries runs the second filter pass over a range result and keeps
// each surviving itinerary paired with its key.
func filterEntries(entries []index.Entry, p filter.Predicate) ([]index.Entry, error) {
	items := index.Itineraries(entries)
	kept, err := filter.Filter(items, p)
	if err != nil {
		return nil, fmt.Errorf("post-filter: %w", err)
	}
	out := make([]index.Entry, 0, len(kept))
	for _, pos := range positions(items, kept) {
		out = append(out, entries[pos])
	}
	return out, nil
}
