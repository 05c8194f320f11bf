/*
Package gtfs turns a GTFS static feed into itineraries.

This package is data-source agnostic at its core - NewFeedFromBytes accepts
raw zip bytes. Load picks the bytes up from a local file, an HTTP URL or a
MinIO/S3 object according to configuration.

# Basic Usage

	day, _ := utils.ParseServiceDate("2026-01-05", time.UTC)
	feed, err := gtfs.NewFeedFromBytes(zipBytes, gtfs.Options{ServiceDate: day})
	if err != nil {
	    log.Fatal(err)
	}
	items := feed.Itineraries()

# Itineraries

Every trip in stop_times.txt becomes one itinerary. Stops are ordered by
stop_sequence; segment i runs from the departure at stop i to the arrival at
stop i+1. The ground time of such an itinerary is the accumulated dwell time
at intermediate stops.

Clock values (HH:MM:SS, possibly past 24:00) are resolved against the service
date in the agency timezone, or Options.Location when set. Stops without any
time (non-timepoints) are skipped; trips with fewer than two timed stops
produce no itinerary.

Trips are returned ordered by trip_id so that index ordinals are stable
between runs.
*/
package gtfs
