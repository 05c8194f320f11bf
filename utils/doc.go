// Package utils provides internal utility functions shared by the itinerary
// sources and renderers.
//
// It contains:
//   - Time formatting and conversion utilities
//   - GTFS service day and clock time resolution
package utils
