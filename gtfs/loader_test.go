package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/itinerary-filter/config"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

var testFeed = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\nA,Test Transit,http://example.com,UTC\n",
	"trips.txt":  "route_id,service_id,trip_id,trip_headsign\nR1,WK,T2,North\nR2,WK,T1,South\nR3,WK,T3,Nowhere\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		// T1 listed out of order; dwell 5 min at S2
		"T1,08:30:00,08:30:00,S3,3\n" +
		"T1,08:00:00,08:00:00,S1,1\n" +
		"T1,08:10:00,08:15:00,S2,2\n" +
		// T2 runs past midnight, S5 is a non-timepoint
		"T2,23:50:00,23:50:00,S4,1\n" +
		"T2,,,S5,2\n" +
		"T2,24:20:00,24:25:00,S6,3\n" +
		"T2,24:40:00,,S7,4\n" +
		// T3 has a single stop
		"T3,09:00:00,09:00:00,S1,1\n",
}

func serviceDay() time.Time { return time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) }

func TestNewFeedFromBytes(t *testing.T) {
	feed, err := NewFeedFromBytes(buildZip(t, testFeed), Options{ServiceDate: serviceDay()})
	require.NoError(t, err)

	assert.Equal(t, "Test Transit", feed.AgencyName)
	assert.Equal(t, "UTC", feed.Timezone)
	require.Len(t, feed.Trips, 2)
	assert.Equal(t, []string{"T1", "T2"}, feed.TripIDs())
	assert.Len(t, feed.Itineraries(), 2)

	t1 := feed.Trips[0]
	assert.Equal(t, "R2", t1.RouteID)
	assert.Equal(t, "South", t1.Headsign)
	assert.Equal(t, []string{"S1", "S2", "S3"}, t1.StopIDs)
	segs := t1.Itinerary.Segments()
	require.Len(t, segs, 2)
	assert.True(t, segs[0].Departure.Equal(time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)))
	assert.True(t, segs[0].Arrival.Equal(time.Date(2026, 1, 5, 8, 10, 0, 0, time.UTC)))
	assert.True(t, segs[1].Departure.Equal(time.Date(2026, 1, 5, 8, 15, 0, 0, time.UTC)))

	gt, err := t1.Itinerary.GroundTime()
	require.NoError(t, err)
	assert.Equal(t, 5, gt)

	t2 := feed.Trips[1]
	assert.Equal(t, []string{"S4", "S6", "S7"}, t2.StopIDs)
	arr, err := t2.Itinerary.ArrivalTime()
	require.NoError(t, err)
	assert.True(t, arr.Equal(time.Date(2026, 1, 6, 0, 40, 0, 0, time.UTC)))
	gt, err = t2.Itinerary.GroundTime()
	require.NoError(t, err)
	assert.Equal(t, 5, gt)
}

func TestNewFeedUsesAgencyTimezone(t *testing.T) {
	files := map[string]string{}
	for k, v := range testFeed {
		files[k] = v
	}
	files["agency.txt"] = "agency_id,agency_name,agency_url,agency_timezone\nA,Oslo Transit,http://example.com,Europe/Oslo\n"

	feed, err := NewFeedFromBytes(buildZip(t, files), Options{ServiceDate: serviceDay()})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Oslo", feed.Timezone)

	dep, err := feed.Trips[0].Itinerary.DepartureTime()
	require.NoError(t, err)
	assert.True(t, dep.Equal(time.Date(2026, 1, 5, 7, 0, 0, 0, time.UTC)), "got %v", dep.UTC())

	feed, err = NewFeedFromBytes(buildZip(t, files), Options{ServiceDate: serviceDay(), Location: time.UTC})
	require.NoError(t, err)
	dep, err = feed.Trips[0].Itinerary.DepartureTime()
	require.NoError(t, err)
	assert.True(t, dep.Equal(time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)))
}

func TestNewFeedErrors(t *testing.T) {
	_, err := NewFeedFromBytes(buildZip(t, testFeed), Options{})
	assert.ErrorIs(t, err, ErrNoServiceDate)

	_, err = NewFeedFromBytes([]byte("not a zip"), Options{ServiceDate: serviceDay()})
	assert.Error(t, err)

	bad := map[string]string{"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\nT1,8h,8h,S1,1\nT1,09:00:00,09:00:00,S2,2\n"}
	_, err = NewFeedFromBytes(buildZip(t, bad), Options{ServiceDate: serviceDay()})
	assert.Error(t, err)

	missing := map[string]string{"stop_times.txt": "trip_id,arrival_time\nT1,08:00:00\n"}
	_, err = NewFeedFromBytes(buildZip(t, missing), Options{ServiceDate: serviceDay()})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	data := buildZip(t, testFeed)

	dir := t.TempDir()
	path := filepath.Join(dir, "feed.zip")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	feed, err := Load(context.Background(), config.GTFSConfig{Path: path, ServiceDate: "2026-01-05"})
	require.NoError(t, err)
	assert.Len(t, feed.Trips, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	feed, err = Load(context.Background(), config.GTFSConfig{StaticURL: srv.URL + "/feed.zip", ServiceDate: "2026-01-05", Timezone: "UTC"})
	require.NoError(t, err)
	assert.Len(t, feed.Trips, 2)

	_, err = Load(context.Background(), config.GTFSConfig{StaticURL: srv.URL + "/missing.zip", ServiceDate: "2026-01-05"})
	assert.ErrorContains(t, err, "HTTP 404")

	_, err = Load(context.Background(), config.GTFSConfig{ServiceDate: "2026-01-05"})
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(config.GTFSConfig{ServiceDate: "20260105", Timezone: "Europe/Oslo"})
	require.NoError(t, err)
	require.NotNil(t, opts.Location)
	assert.Equal(t, "Europe/Oslo", opts.Location.String())
	y, m, d := opts.ServiceDate.Date()
	assert.Equal(t, []int{2026, 1, 5}, []int{y, int(m), d})

	opts, err = OptionsFromConfig(config.GTFSConfig{})
	require.NoError(t, err)
	assert.Nil(t, opts.Location)
	assert.False(t, opts.ServiceDate.IsZero())

	_, err = OptionsFromConfig(config.GTFSConfig{Timezone: "Mars/Olympus"})
	assert.Error(t, err)
}
