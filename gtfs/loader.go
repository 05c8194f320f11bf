package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
	"github.com/theoremus-urban-solutions/itinerary-filter/utils"
)

type stopTime struct {
	stop    string
	seq     int
	arrTime string
	depTime string
}

type tripInfo struct {
	routeID  string
	headsign string
}

// loader accumulates the raw CSV content before itineraries are assembled.
type loader struct {
	agencyName string
	agencyTZ   string
	trips      map[string]tripInfo
	stopTimes  map[string][]stopTime
}

// NewFeedFromBytes parses a GTFS zip held in memory.
func NewFeedFromBytes(data []byte, opts Options) (*Feed, error) {
	return NewFeedFromReader(bytes.NewReader(data), int64(len(data)), opts)
}

// NewFeedFromReader parses a GTFS zip from r.
func NewFeedFromReader(r io.ReaderAt, size int64, opts Options) (*Feed, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	return newFeed(zr.File, opts)
}

// NewFeedFromFile opens a local GTFS zip file.
func NewFeedFromFile(path string, opts Options) (*Feed, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return newFeed(zr.File, opts)
}

func newFeed(files []*zip.File, opts Options) (*Feed, error) {
	if opts.ServiceDate.IsZero() {
		return nil, ErrNoServiceDate
	}
	l := &loader{
		trips:     map[string]tripInfo{},
		stopTimes: map[string][]stopTime{},
	}
	for _, f := range files {
		name := strings.ToLower(f.Name)
		if name == "agency.txt" || name == "trips.txt" || name == "stop_times.txt" {
			if err := l.consumeCSV(f); err != nil {
				return nil, fmt.Errorf("read %s: %w", f.Name, err)
			}
		}
	}
	return l.assemble(opts)
}

func (l *loader) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	switch strings.ToLower(f.Name) {
	case "agency.txt":
		agTZ := idx("agency_timezone")
		agName := idx("agency_name")
		if len(rec) > 1 {
			l.agencyTZ = field(rec[1], agTZ)
			l.agencyName = field(rec[1], agName)
		}
	case "trips.txt":
		tID := idx("trip_id")
		rID := idx("route_id")
		hs := idx("trip_headsign")
		if tID < 0 {
			return fmt.Errorf("missing trip_id column")
		}
		for _, row := range rec[1:] {
			l.trips[field(row, tID)] = tripInfo{routeID: field(row, rID), headsign: field(row, hs)}
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		sID := idx("stop_id")
		sq := idx("stop_sequence")
		arrTime := idx("arrival_time")
		depTime := idx("departure_time")
		if tID < 0 || sID < 0 || sq < 0 {
			return fmt.Errorf("missing trip_id, stop_id or stop_sequence column")
		}
		for n, row := range rec[1:] {
			seq, err := strconv.Atoi(field(row, sq))
			if err != nil {
				log.Printf("gtfs: stop_times row %d: bad stop_sequence %q, skipped", n+2, field(row, sq))
				continue
			}
			trip := field(row, tID)
			l.stopTimes[trip] = append(l.stopTimes[trip], stopTime{
				stop:    field(row, sID),
				seq:     seq,
				arrTime: field(row, arrTime),
				depTime: field(row, depTime),
			})
		}
	}
	return nil
}

func (l *loader) assemble(opts Options) (*Feed, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
		if l.agencyTZ != "" {
			agencyLoc, err := time.LoadLocation(l.agencyTZ)
			if err != nil {
				return nil, fmt.Errorf("agency timezone %q: %w", l.agencyTZ, err)
			}
			loc = agencyLoc
		}
	}
	y, m, d := opts.ServiceDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	ids := make([]string, 0, len(l.stopTimes))
	for id := range l.stopTimes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	feed := &Feed{AgencyName: l.agencyName, Timezone: loc.String()}
	for _, id := range ids {
		arr := l.stopTimes[id]
		sort.SliceStable(arr, func(i, j int) bool { return arr[i].seq < arr[j].seq })

		trip, err := buildTrip(id, arr, day)
		if err != nil {
			return nil, err
		}
		if trip.Itinerary.Len() == 0 {
			log.Printf("gtfs: trip %s has fewer than two timed stops, skipped", id)
			continue
		}
		info := l.trips[id]
		trip.RouteID = info.routeID
		trip.Headsign = info.headsign
		feed.Trips = append(feed.Trips, trip)
	}
	return feed, nil
}

// buildTrip links consecutive timed stops into segments.
func buildTrip(id string, arr []stopTime, day time.Time) (Trip, error) {
	type timed struct {
		stop     string
		arr, dep time.Time
	}
	stops := make([]timed, 0, len(arr))
	for _, st := range arr {
		a, d := st.arrTime, st.depTime
		if a == "" {
			a = d
		}
		if d == "" {
			d = a
		}
		if a == "" {
			continue
		}
		at, err := utils.ServiceTime(day, a)
		if err != nil {
			return Trip{}, fmt.Errorf("trip %s stop %s: %w", id, st.stop, err)
		}
		dt, err := utils.ServiceTime(day, d)
		if err != nil {
			return Trip{}, fmt.Errorf("trip %s stop %s: %w", id, st.stop, err)
		}
		stops = append(stops, timed{stop: st.stop, arr: at, dep: dt})
	}

	trip := Trip{ID: id}
	if len(stops) < 2 {
		return trip, nil
	}
	segs := make([]flight.Segment, 0, len(stops)-1)
	for i := 0; i+1 < len(stops); i++ {
		segs = append(segs, flight.NewSegment(stops[i].dep, stops[i+1].arr))
	}
	trip.StopIDs = make([]string, len(stops))
	for i, s := range stops {
		trip.StopIDs[i] = s.stop
	}
	trip.Itinerary = flight.NewItinerary(segs...)
	return trip, nil
}
