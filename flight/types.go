package flight

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyItinerary is returned by every characteristic accessor when the
// itinerary has no segments.
var ErrEmptyItinerary = errors.New("itinerary has no segments")

// Segment is one leg of a trip.
type Segment struct {
	Departure time.Time `json:"departure" yaml:"departure"`
	Arrival   time.Time `json:"arrival" yaml:"arrival"`
}

// NewSegment creates a segment. No ordering between dep and arr is enforced.
func NewSegment(dep, arr time.Time) Segment {
	return Segment{Departure: dep, Arrival: arr}
}

// Chronological reports whether the segment does not depart after it arrives.
func (s Segment) Chronological() bool {
	return !s.Departure.After(s.Arrival)
}

func (s Segment) String() string {
	return "[" + s.Departure.Format(time.RFC3339) + "|" + s.Arrival.Format(time.RFC3339) + "]"
}

// Itinerary is an ordered sequence of segments representing one trip.
type Itinerary struct {
	segments []Segment
}

// NewItinerary copies segs into a new itinerary, keeping their order.
func NewItinerary(segs ...Segment) Itinerary {
	cp := make([]Segment, len(segs))
	copy(cp, segs)
	return Itinerary{segments: cp}
}

// Segments returns a copy of the itinerary's segments.
func (it Itinerary) Segments() []Segment {
	cp := make([]Segment, len(it.segments))
	copy(cp, it.segments)
	return cp
}

func (it Itinerary) Len() int { return len(it.segments) }

// Equal reports whether both itineraries hold the same segments in the same order.
func (it Itinerary) Equal(other Itinerary) bool {
	if len(it.segments) != len(other.segments) {
		return false
	}
	for i, s := range it.segments {
		o := other.segments[i]
		if !s.Departure.Equal(o.Departure) || !s.Arrival.Equal(o.Arrival) {
			return false
		}
	}
	return true
}

func (it Itinerary) String() string {
	parts := make([]string, len(it.segments))
	for i, s := range it.segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
