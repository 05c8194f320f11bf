package gtfs

import (
	"errors"
	"time"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
)

// ErrNoServiceDate is returned when no service date was given.
var ErrNoServiceDate = errors.New("gtfs: service date required")

// Options controls how clock times are resolved.
type Options struct {
	ServiceDate time.Time      // only the date part is used
	Location    *time.Location // overrides agency_timezone when set
}

// Trip is one GTFS trip and the itinerary built from its stop times.
type Trip struct {
	ID        string
	RouteID   string
	Headsign  string
	StopIDs   []string
	Itinerary flight.Itinerary
}

// Feed holds the itineraries of one GTFS static feed for one service date.
type Feed struct {
	AgencyName string
	Timezone   string
	Trips      []Trip
}

// Itineraries returns the trips' itineraries in trip_id order.
func (f *Feed) Itineraries() []flight.Itinerary {
	out := make([]flight.Itinerary, len(f.Trips))
	for i, t := range f.Trips {
		out[i] = t.Itinerary
	}
	return out
}

// TripIDs returns trip ids parallel to Itineraries.
func (f *Feed) TripIDs() []string {
	out := make([]string, len(f.Trips))
	for i, t := range f.Trips {
		out[i] = t.ID
	}
	return out
}
