package keys

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Scale is the multiplier applied to a characteristic value. It leaves room
// for up to MaxOrdinal ordinals per value.
const Scale int64 = 1_000_000_000

// MaxOrdinal is the largest ordinal that can be added to a scaled value
// without spilling into the next value.
const MaxOrdinal = Scale - 1

// MinValue and MaxValue bound the characteristic values that scale into an
// int64 with room left for MaxOrdinal.
const (
	MinValue = math.MinInt64 / Scale
	MaxValue = (math.MaxInt64 - MaxOrdinal) / Scale
)

// ErrOutOfRange is returned by CheckValue for values that cannot be scaled.
var ErrOutOfRange = errors.New("keys: value outside encodable range")

// CheckValue reports whether v can be scaled without overflow.
func CheckValue(v int64) error {
	if v < MinValue || v > MaxValue {
		return fmt.Errorf("%d not in [%d, %d]: %w", v, MinValue, MaxValue, ErrOutOfRange)
	}
	return nil
}

// TimestampKey scales the UTC epoch seconds of t. Times whose epoch seconds
// fail CheckValue (before 1678 or after 2262) wrap around; callers check first.
func TimestampKey(t time.Time) int64 {
	return t.Unix() * Scale
}

// IntegerKey scales an integer characteristic such as ground time minutes.
func IntegerKey(v int) int64 {
	return int64(v) * Scale
}

// Value returns the characteristic part of a built key.
func Value(key int64) int64 {
	v := key / Scale
	if key%Scale < 0 {
		v--
	}
	return v
}

// Ordinal returns the tie-break part of a built key.
func Ordinal(key int64) int64 {
	o := key % Scale
	if o < 0 {
		o += Scale
	}
	return o
}
