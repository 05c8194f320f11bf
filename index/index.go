package index

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
	"github.com/theoremus-urban-solutions/itinerary-filter/keys"
)

var (
	// ErrNotBuilt is returned by queries on a zero OrderedIndex.
	ErrNotBuilt = errors.New("index: not built")
	// ErrOrdinalOverflow is returned when a collection has more elements
	// than ordinals fit under keys.Scale.
	ErrOrdinalOverflow = errors.New("index: too many itineraries for key scale")
)

// KeyFunc maps an itinerary to a scaled characteristic key.
type KeyFunc func(it flight.Itinerary) (int64, error)

// ByDepartureTime keys itineraries by first departure.
func ByDepartureTime(it flight.Itinerary) (int64, error) { return it.DepartureTimeKey() }

// ByGroundTime keys itineraries by accumulated ground time.
func ByGroundTime(it flight.Itinerary) (int64, error) { return it.GroundTimeKey() }

// Entry is one indexed itinerary.
type Entry struct {
	Key       int64
	Itinerary flight.Itinerary
}

// OrderedIndex is a sorted, read-only snapshot of entries.
// The zero value is an unbuilt index.
type OrderedIndex struct {
	entries []Entry
	built   bool
}

// Build indexes items in iteration order. The i-th item (1-based) is stored
// under keyFn(item)+i. A key function error aborts the build.
func Build(items []flight.Itinerary, keyFn KeyFunc) (*OrderedIndex, error) {
	if int64(len(items)) > keys.MaxOrdinal {
		return nil, fmt.Errorf("build index of %d itineraries: %w", len(items), ErrOrdinalOverflow)
	}

	entries := make([]Entry, 0, len(items))
	var ordinal int64 = 1
	for i, it := range items {
		k, err := keyFn(it)
		if err != nil {
			return nil, fmt.Errorf("build index: key for itinerary %d: %w", i, err)
		}
		entries = append(entries, Entry{Key: k + ordinal, Itinerary: it})
		ordinal++
	}

	// Stable sort keeps insertion order among equal keys, so the last of a
	// run of equal keys is the last written.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	out := entries[:0]
	for _, e := range entries {
		if n := len(out); n > 0 && out[n-1].Key == e.Key {
			log.Printf("index: key collision on %d, keeping later itinerary", e.Key)
			out[n-1] = e
			continue
		}
		out = append(out, e)
	}

	return &OrderedIndex{entries: out, built: true}, nil
}

// Built reports whether the index was produced by Build.
func (x *OrderedIndex) Built() bool { return x != nil && x.built }

// Len returns the number of entries.
func (x *OrderedIndex) Len() int {
	if !x.Built() {
		return 0
	}
	return len(x.entries)
}

// Entries returns every entry in ascending key order.
func (x *OrderedIndex) Entries() ([]Entry, error) {
	if !x.Built() {
		return nil, ErrNotBuilt
	}
	return clone(x.entries), nil
}

// RangeFrom returns entries with key >= bound, ascending.
func (x *OrderedIndex) RangeFrom(bound int64) ([]Entry, error) {
	if !x.Built() {
		return nil, ErrNotBuilt
	}
	return clone(x.entries[x.search(bound):]), nil
}

// RangeBefore returns entries with key < bound, ascending.
func (x *OrderedIndex) RangeBefore(bound int64) ([]Entry, error) {
	if !x.Built() {
		return nil, ErrNotBuilt
	}
	return clone(x.entries[:x.search(bound)]), nil
}

// Range returns entries with from <= key < to, ascending. An empty or
// inverted range yields no entries.
func (x *OrderedIndex) Range(from, to int64) ([]Entry, error) {
	if !x.Built() {
		return nil, ErrNotBuilt
	}
	if to <= from {
		return []Entry{}, nil
	}
	return clone(x.entries[x.search(from):x.search(to)]), nil
}

// First returns the entry with the smallest key.
func (x *OrderedIndex) First() (Entry, bool) {
	if x.Len() == 0 {
		return Entry{}, false
	}
	return x.entries[0], true
}

// Last returns the entry with the largest key.
func (x *OrderedIndex) Last() (Entry, bool) {
	if x.Len() == 0 {
		return Entry{}, false
	}
	return x.entries[len(x.entries)-1], true
}

// search returns the position of the first entry with key >= bound.
func (x *OrderedIndex) search(bound int64) int {
	return sort.Search(len(x.entries), func(i int) bool { return x.entries[i].Key >= bound })
}

// Itineraries returns the itineraries of entries, in the same order.
func Itineraries(entries []Entry) []flight.Itinerary {
	out := make([]flight.Itinerary, len(entries))
	for i, e := range entries {
		out[i] = e.Itinerary
	}
	return out
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
