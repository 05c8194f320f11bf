package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Iso8601 formats t in ISO8601 (RFC3339), keeping its location
func Iso8601(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// ParseServiceDate parses a YYYY-MM-DD or YYYYMMDD service date in loc.
func ParseServiceDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	layout := "2006-01-02"
	if len(s) == 8 && !strings.Contains(s, "-") {
		layout = "20060102"
	}
	d, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("service date %q: %w", s, err)
	}
	return d, nil
}

// ServiceTime resolves a GTFS HH:MM:SS clock value against a service day.
// Hours may exceed 23 for trips running past midnight. Times are measured
// from noon minus 12h so that DST transition days resolve correctly.
func ServiceTime(serviceDay time.Time, clock string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("gtfs time %q: want HH:MM:SS", clock)
	}
	var hms [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("gtfs time %q: bad field %q", clock, p)
		}
		hms[i] = n
	}
	if hms[1] > 59 || hms[2] > 59 {
		return time.Time{}, fmt.Errorf("gtfs time %q: out of range", clock)
	}
	y, m, d := serviceDay.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, serviceDay.Location())
	offset := time.Duration(hms[0])*time.Hour + time.Duration(hms[1])*time.Minute + time.Duration(hms[2])*time.Second
	return noon.Add(-12 * time.Hour).Add(offset), nil
}
