package filter

import (
	"time"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
)

// Predicate decides whether an itinerary is kept.
type Predicate interface {
	Evaluate(it flight.Itinerary) (bool, error)
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(it flight.Itinerary) (bool, error)

func (f PredicateFunc) Evaluate(it flight.Itinerary) (bool, error) { return f(it) }

// BoolFunc adapts a predicate that cannot fail.
type BoolFunc func(it flight.Itinerary) bool

func (f BoolFunc) Evaluate(it flight.Itinerary) (bool, error) { return f(it), nil }

// And is true when every predicate is true. Predicates run in list order and
// evaluation stops at the first false or the first error. An empty And is true.
func And(preds ...Predicate) Predicate {
	return PredicateFunc(func(it flight.Itinerary) (bool, error) {
		for _, p := range preds {
			ok, err := p.Evaluate(it)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// Or is true when any predicate is true, stopping at the first true or error.
// An empty Or is false.
func Or(preds ...Predicate) Predicate {
	return PredicateFunc(func(it flight.Itinerary) (bool, error) {
		for _, p := range preds {
			ok, err := p.Evaluate(it)
			if err != nil || ok {
				return ok && err == nil, err
			}
		}
		return false, nil
	})
}

// Not negates p. Errors pass through.
func Not(p Predicate) Predicate {
	return PredicateFunc(func(it flight.Itinerary) (bool, error) {
		ok, err := p.Evaluate(it)
		if err != nil {
			return false, err
		}
		return !ok, nil
	})
}

// DepartsAfter keeps itineraries whose first departure is strictly after t.
func DepartsAfter(t time.Time) Predicate {
	return PredicateFunc(func(it flight.Itinerary) (bool, error) {
		dep, err := it.DepartureTime()
		if err != nil {
			return false, err
		}
		return dep.After(t), nil
	})
}

// DepartsBefore keeps itineraries whose first departure is strictly before t.
func DepartsBefore(t time.Time) Predicate {
	return PredicateFunc(func(it flight.Itinerary) (bool, error) {
		dep, err := it.DepartureTime()
		if err != nil {
			return false, err
		}
		return dep.Before(t), nil
	})
}

// Chronological keeps itineraries without inverted segments.
func Chronological() Predicate {
	return PredicateFunc(flight.Itinerary.IsChronological)
}

// GroundTimeBelow keeps itineraries whose ground time is under the given minutes.
func GroundTimeBelow(minutes int) Predicate {
	return PredicateFunc(func(it flight.Itinerary) (bool, error) {
		gt, err := it.GroundTime()
		if err != nil {
			return false, err
		}
		return gt < minutes, nil
	})
}
