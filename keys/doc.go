// Package keys encodes itinerary characteristics into ordered int64 keys.
//
// A characteristic value is shifted left by Scale so that the low part of the
// key is free for a 1-based ordinal assigned while an index is being built:
//
//	key = value*Scale + ordinal
//
// Keys of different values order like the values themselves; keys of equal
// values order by ordinal, i.e. by position in the source collection.
//
// The same *Key function must be used both to build an index and to compute
// the bounds used to query it. Adding a characteristic means adding one more
// *Key function whose result is already scaled.
package keys
