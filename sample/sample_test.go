package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItinerariesCharacteristics(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	items := Itineraries(now)
	require.Len(t, items, 6)

	tests := []struct {
		name          string
		pos           int
		segments      int
		chronological bool
		groundMinutes int
		departedPast  bool
	}{
		{name: "regular", pos: 0, segments: 1, chronological: true},
		{name: "two segments", pos: 1, segments: 2, chronological: true, groundMinutes: 60},
		{name: "departed in past", pos: 2, segments: 1, chronological: true, departedPast: true},
		{name: "arrival before departure", pos: 3, segments: 1, chronological: false},
		{name: "long layover", pos: 4, segments: 2, chronological: true, groundMinutes: 180},
		{name: "long total layover", pos: 5, segments: 3, chronological: true, groundMinutes: 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := items[tt.pos]
			assert.Equal(t, tt.segments, it.Len())

			ok, err := it.IsChronological()
			require.NoError(t, err)
			assert.Equal(t, tt.chronological, ok)

			gt, err := it.GroundTime()
			require.NoError(t, err)
			assert.Equal(t, tt.groundMinutes, gt)

			dep, err := it.DepartureTime()
			require.NoError(t, err)
			assert.Equal(t, tt.departedPast, dep.Before(now))
		})
	}
}
