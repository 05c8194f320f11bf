// Package sample provides a fixed set of itineraries covering the usual
// filtering cases. It stands in for a real itinerary source in the CLI demo.
package sample

import (
	"time"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
)

// Itineraries returns six itineraries anchored three days after now:
//
//  1. a regular two hour flight
//  2. a regular two segment flight with a one hour layover
//  3. a flight that departed in the past
//  4. a flight that arrives before it departs
//  5. a flight with more than two hours of ground time
//  6. a three segment flight with more than two hours of ground time in total
func Itineraries(now time.Time) []flight.Itinerary {
	t := now.AddDate(0, 0, 3)
	h := func(n int) time.Time { return t.Add(time.Duration(n) * time.Hour) }

	return []flight.Itinerary{
		build(t, h(2)),
		build(t, h(2), h(3), h(5)),
		build(t.AddDate(0, 0, -6), t),
		build(t, h(-6)),
		build(t, h(2), h(5), h(6)),
		build(t, h(2), h(3), h(4), h(6), h(7)),
	}
}

// build pairs up consecutive timestamps into segments.
func build(dates ...time.Time) flight.Itinerary {
	segs := make([]flight.Segment, 0, len(dates)/2)
	for i := 0; i+1 < len(dates); i += 2 {
		segs = append(segs, flight.NewSegment(dates[i], dates[i+1]))
	}
	return flight.NewItinerary(segs...)
}
