package filter

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
)

// Filter returns the itineraries for which p is true, in input order.
// items is not modified. A predicate error aborts the call.
func Filter(items []flight.Itinerary, p Predicate) ([]flight.Itinerary, error) {
	out := make([]flight.Itinerary, 0, len(items))
	for i, it := range items {
		ok, err := p.Evaluate(it)
		if err != nil {
			return nil, fmt.Errorf("filter: itinerary %d: %w", i, err)
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// FilterAll is Filter with the predicates combined by And, in list order.
func FilterAll(items []flight.Itinerary, preds []Predicate) ([]flight.Itinerary, error) {
	return Filter(items, And(preds...))
}

// ParallelFilter evaluates p on up to workers itineraries at a time and
// returns the matches in input order. workers <= 0 means GOMAXPROCS.
// The first predicate error cancels outstanding work and is returned.
func ParallelFilter(ctx context.Context, items []flight.Itinerary, p Predicate, workers int) ([]flight.Itinerary, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(items) < 2 {
		return Filter(items, p)
	}

	keep := make([]bool, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := p.Evaluate(items[i])
			if err != nil {
				return fmt.Errorf("filter: itinerary %d: %w", i, err)
			}
			keep[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]flight.Itinerary, 0, len(items))
	for i, ok := range keep {
		if ok {
			out = append(out, items[i])
		}
	}
	return out, nil
}
