package keys

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampKey(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected int64
	}{
		{name: "epoch", input: time.Unix(0, 0), expected: 0},
		{name: "specific timestamp", input: time.Unix(1696320000, 0), expected: 1696320000 * Scale},
		{name: "sub-second part dropped", input: time.Unix(10, 999_999_999), expected: 10 * Scale},
		{name: "negative timestamp", input: time.Unix(-86400, 0), expected: -86400 * Scale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimestampKey(tt.input))
		})
	}
}

func TestTimestampKeyIgnoresLocation(t *testing.T) {
	utc := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	assert.Equal(t, TimestampKey(utc), TimestampKey(utc.In(berlin)))
}

func TestIntegerKey(t *testing.T) {
	assert.Equal(t, int64(0), IntegerKey(0))
	assert.Equal(t, 120*Scale, IntegerKey(120))
	assert.Less(t, IntegerKey(119)+MaxOrdinal, IntegerKey(120))
}

func TestValueAndOrdinal(t *testing.T) {
	tests := []struct {
		name    string
		key     int64
		value   int64
		ordinal int64
	}{
		{name: "zero value first ordinal", key: IntegerKey(0) + 1, value: 0, ordinal: 1},
		{name: "positive value", key: IntegerKey(1440) + 7, value: 1440, ordinal: 7},
		{name: "negative value", key: TimestampKey(time.Unix(-60, 0)) + 3, value: -60, ordinal: 3},
		{name: "max ordinal", key: IntegerKey(5) + MaxOrdinal, value: 5, ordinal: MaxOrdinal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, Value(tt.key))
			assert.Equal(t, tt.ordinal, Ordinal(tt.key))
		})
	}
}

func TestCheckValue(t *testing.T) {
	tests := []struct {
		name    string
		input   int64
		wantErr bool
	}{
		{name: "zero", input: 0},
		{name: "2026", input: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Unix()},
		{name: "max", input: MaxValue},
		{name: "min", input: MinValue},
		{name: "above max", input: MaxValue + 1, wantErr: true},
		{name: "below min", input: MinValue - 1, wantErr: true},
		{name: "year 2300", input: time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC).Unix(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckValue(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrOutOfRange)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBoundsKeepOrder(t *testing.T) {
	hi := MaxValue*Scale + MaxOrdinal
	lo := MinValue * Scale
	assert.Greater(t, hi, TimestampKey(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Less(t, lo, TimestampKey(time.Unix(0, 0)))
	assert.Equal(t, MaxValue, Value(hi))
	assert.Equal(t, MaxOrdinal, Ordinal(hi))
}
