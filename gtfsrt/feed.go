package gtfsrt

import (
	"fmt"
	"log"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
)

// Trip is one realtime trip and the itinerary built from its predictions.
type Trip struct {
	ID        string
	RouteID   string
	StartDate string // YYYYMMDD
	StopIDs   []string
	Itinerary flight.Itinerary
}

// Feed holds the itineraries decoded from one trip updates message.
type Feed struct {
	HeaderTimestamp int64
	Trips           []Trip
}

// Itineraries returns the trips' itineraries in feed order.
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

// ParseTripUpdates decodes a FeedMessage and builds one itinerary per trip
// update. Entities without a trip update are ignored. Empty data yields an
// empty feed.
func ParseTripUpdates(data []byte) (*Feed, error) {
	feed := &Feed{}
	if len(data) == 0 {
		return feed, nil
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode trip updates: %w", err)
	}
	feed.HeaderTimestamp = int64(fm.GetHeader().GetTimestamp())

	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		trip := buildTrip(tu)
		if trip.Itinerary.Len() == 0 {
			log.Printf("gtfsrt: entity %s (trip %s) has fewer than two timed stops, skipped", e.GetId(), trip.ID)
			continue
		}
		feed.Trips = append(feed.Trips, trip)
	}
	return feed, nil
}

func buildTrip(tu *gtfsrtpb.TripUpdate) Trip {
	trip := Trip{
		ID:        tu.GetTrip().GetTripId(),
		RouteID:   tu.GetTrip().GetRouteId(),
		StartDate: tu.GetTrip().GetStartDate(),
	}

	type timed struct {
		stop     string
		arr, dep int64
	}
	stops := make([]timed, 0, len(tu.GetStopTimeUpdate()))
	for _, stu := range tu.GetStopTimeUpdate() {
		if stu.GetScheduleRelationship() == gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED {
			continue
		}
		arr, dep := stu.GetArrival().GetTime(), stu.GetDeparture().GetTime()
		if arr == 0 {
			arr = dep
		}
		if dep == 0 {
			dep = arr
		}
		if arr == 0 {
			continue
		}
		stops = append(stops, timed{stop: stu.GetStopId(), arr: arr, dep: dep})
	}
	if len(stops) < 2 {
		return trip
	}

	segs := make([]flight.Segment, 0, len(stops)-1)
	for i := 0; i+1 < len(stops); i++ {
		segs = append(segs, flight.NewSegment(time.Unix(stops[i].dep, 0).UTC(), time.Unix(stops[i+1].arr, 0).UTC()))
	}
	trip.StopIDs = make([]string, len(stops))
	for i, s := range stops {
		trip.StopIDs[i] = s.stop
	}
	trip.Itinerary = flight.NewItinerary(segs...)
	return trip
}
