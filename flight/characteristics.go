package flight

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/itinerary-filter/keys"
)

// DepartureTime returns the departure of the first segment.
func (it Itinerary) DepartureTime() (time.Time, error) {
	if len(it.segments) == 0 {
		return time.Time{}, ErrEmptyItinerary
	}
	return it.segments[0].Departure, nil
}

// ArrivalTime returns the arrival of the last segment.
func (it Itinerary) ArrivalTime() (time.Time, error) {
	if len(it.segments) == 0 {
		return time.Time{}, ErrEmptyItinerary
	}
	return it.segments[len(it.segments)-1].Arrival, nil
}

// IsChronological returns false as soon as a segment departs strictly after
// its own arrival. Equal departure and arrival is valid.
func (it Itinerary) IsChronological() (bool, error) {
	if len(it.segments) == 0 {
		return false, ErrEmptyItinerary
	}
	for _, s := range it.segments {
		if !s.Chronological() {
			return false, nil
		}
	}
	return true, nil
}

// GroundTime returns the accumulated layover in whole minutes.
//
// A gap is counted only for a non-first segment that itself arrives after it
// departs and that departs after the previous segment's arrival. The previous
// arrival always advances to the current segment's arrival, even when the
// current segment is malformed, so a malformed segment shifts the anchor used
// for the next gap.
func (it Itinerary) GroundTime() (int, error) {
	if len(it.segments) == 0 {
		return 0, ErrEmptyItinerary
	}
	var (
		total    int64 // seconds
		prevArr  int64
		havePrev bool
	)
	for _, s := range it.segments {
		dep := s.Departure.Unix()
		arr := s.Arrival.Unix()
		if havePrev && arr > dep && dep > prevArr {
			total += dep - prevArr
		}
		prevArr = arr
		havePrev = true
	}
	return int(total / 60), nil
}

// DepartureTimeKey is the scaled departure time, without ordinal.
func (it Itinerary) DepartureTimeKey() (int64, error) {
	dep, err := it.DepartureTime()
	if err != nil {
		return 0, err
	}
	if err := keys.CheckValue(dep.Unix()); err != nil {
		return 0, fmt.Errorf("departure %s: %w", dep.Format(time.RFC3339), err)
	}
	return keys.TimestampKey(dep), nil
}

// GroundTimeKey is the scaled ground time, without ordinal.
func (it Itinerary) GroundTimeKey() (int64, error) {
	gt, err := it.GroundTime()
	if err != nil {
		return 0, err
	}
	if err := keys.CheckValue(int64(gt)); err != nil {
		return 0, fmt.Errorf("ground time: %w", err)
	}
	return keys.IntegerKey(gt), nil
}
