package filter

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
)

var now = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func day(n int) time.Time { return now.AddDate(0, 0, n) }

func fixtures() (regular, corrupted flight.Itinerary) {
	s1 := flight.NewSegment(day(1), day(2))
	s2 := flight.NewSegment(day(3), day(4))
	bad := flight.NewSegment(day(6), day(5))
	return flight.NewItinerary(s1, s2), flight.NewItinerary(s2, bad)
}

func assertItineraries(t *testing.T, expected, actual []flight.Itinerary) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equal(actual[i]), "position %d: want %s, got %s", i, expected[i], actual[i])
	}
}

func TestFilterSinglePredicate(t *testing.T) {
	regular, corrupted := fixtures()
	items := []flight.Itinerary{regular, corrupted}

	got, err := Filter(items, DepartsAfter(day(2)))
	require.NoError(t, err)
	assertItineraries(t, []flight.Itinerary{corrupted}, got)
}

func TestFilterAllPredicates(t *testing.T) {
	regular, corrupted := fixtures()
	items := []flight.Itinerary{regular, corrupted}

	got, err := FilterAll(items, []Predicate{DepartsAfter(day(2)), Chronological()})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = FilterAll(items, []Predicate{Chronological(), GroundTimeBelow(24 * 60)})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = FilterAll(items, nil)
	require.NoError(t, err)
	assertItineraries(t, items, got)
}

func TestFilterPreservesOrderAndDuplicates(t *testing.T) {
	regular, corrupted := fixtures()
	items := []flight.Itinerary{corrupted, regular, corrupted, regular}

	got, err := Filter(items, BoolFunc(func(flight.Itinerary) bool { return true }))
	require.NoError(t, err)
	assertItineraries(t, items, got)

	got, err = Filter(items, Not(Chronological()))
	require.NoError(t, err)
	assertItineraries(t, []flight.Itinerary{corrupted, corrupted}, got)
}

func TestFilterAllMatchesAnd(t *testing.T) {
	regular, corrupted := fixtures()
	items := []flight.Itinerary{regular, corrupted, regular}
	preds := []Predicate{Chronological(), DepartsBefore(day(2)), GroundTimeBelow(2000)}

	viaList, err := FilterAll(items, preds)
	require.NoError(t, err)
	viaLambda, err := Filter(items, BoolFunc(func(it flight.Itinerary) bool {
		for _, p := range preds {
			ok, _ := p.Evaluate(it)
			if !ok {
				return false
			}
		}
		return true
	}))
	require.NoError(t, err)
	assertItineraries(t, viaLambda, viaList)
	assertItineraries(t, []flight.Itinerary{regular, regular}, viaList)
}

func TestAndShortCircuitsInListOrder(t *testing.T) {
	regular, _ := fixtures()
	var calls []string
	record := func(name string, result bool) Predicate {
		return BoolFunc(func(flight.Itinerary) bool {
			calls = append(calls, name)
			return result
		})
	}

	ok, err := And(record("a", true), record("b", false), record("c", true)).Evaluate(regular)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestOr(t *testing.T) {
	regular, corrupted := fixtures()
	p := Or(Not(Chronological()), GroundTimeBelow(1))

	ok, err := p.Evaluate(corrupted)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Evaluate(regular)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Or().Evaluate(regular)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFilterFailsFast(t *testing.T) {
	regular, _ := fixtures()
	items := []flight.Itinerary{regular, {}, regular}

	got, err := Filter(items, DepartsAfter(day(0)))
	require.Error(t, err)
	assert.ErrorIs(t, err, flight.ErrEmptyItinerary)
	assert.Nil(t, got)

	boom := errors.New("boom")
	var evaluated int
	_, err = Filter([]flight.Itinerary{regular, regular, regular}, PredicateFunc(func(flight.Itinerary) (bool, error) {
		evaluated++
		if evaluated == 2 {
			return false, boom
		}
		return true, nil
	}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, evaluated)
}

func TestParallelFilterKeepsInputOrder(t *testing.T) {
	items := make([]flight.Itinerary, 0, 200)
	for i := 0; i < 200; i++ {
		dep := now.Add(time.Duration(i) * time.Minute)
		items = append(items, flight.NewItinerary(flight.NewSegment(dep, dep.Add(time.Hour))))
	}
	even := PredicateFunc(func(it flight.Itinerary) (bool, error) {
		dep, err := it.DepartureTime()
		if err != nil {
			return false, err
		}
		return int(dep.Sub(now).Minutes())%2 == 0, nil
	})

	want, err := Filter(items, even)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 4, 16} {
		got, err := ParallelFilter(context.Background(), items, even, workers)
		require.NoError(t, err)
		assertItineraries(t, want, got)
	}
}

func TestParallelFilterReturnsPredicateError(t *testing.T) {
	regular, _ := fixtures()
	items := []flight.Itinerary{regular, regular, {}, regular}

	got, err := ParallelFilter(context.Background(), items, Chronological(), 4)
	assert.ErrorIs(t, err, flight.ErrEmptyItinerary)
	assert.Nil(t, got)
}

func TestParallelFilterCancelled(t *testing.T) {
	regular, _ := fixtures()
	items := []flight.Itinerary{regular, regular, regular}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var evaluated atomic.Int32
	_, err := ParallelFilter(ctx, items, BoolFunc(func(flight.Itinerary) bool {
		evaluated.Add(1)
		return true
	}), 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, evaluated.Load())
}
