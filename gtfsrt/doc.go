// Package gtfsrt turns GTFS-Realtime trip updates into itineraries.
//
// Each TripUpdate with at least two timed stop time updates becomes one
// itinerary: segment i runs from the predicted departure at update i to the
// predicted arrival at update i+1. Predictions are taken as published, so a
// segment may arrive before it departs; such itineraries are kept and are
// reported as non-chronological by the flight package.
//
// The main entry points are Client, which fetches raw protobuf bytes,
// ParseTripUpdates, which decodes them, and Load, which does both for a
// configured source.
package gtfsrt
