/*
Package flight models itineraries and the characteristics derived from them.

An Itinerary is an ordered, immutable sequence of Segments. The order is the
order the itinerary was built with; segments are never re-sorted. A Segment is
a plain pair of departure and arrival timestamps and may be malformed (arrival
before departure). Malformed segments are data, not construction errors.

# Characteristics

Characteristics are recomputed on every call, nothing is cached on the
itinerary:

  - DepartureTime: departure of the first segment
  - IsChronological: no segment departs after it arrives
  - GroundTime: accumulated layover between consecutive segments, in minutes

Each characteristic has a matching encoded key (DepartureTimeKey,
GroundTimeKey) suitable for an ordered index. Every accessor fails with
ErrEmptyItinerary when the itinerary has no segments.
*/
package flight
