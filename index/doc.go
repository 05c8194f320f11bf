/*
Package index builds an immutable ordered index over itineraries.

An index is built once from a collection and a key function. Each element is
stored under keyFn(element) + ordinal, where the ordinal is the element's
1-based position in this build. Range queries then extract sub-sequences in
O(log n + k):

	idx, err := index.Build(items, index.ByDepartureTime)
	if err != nil {
	    return err
	}
	upcoming, _ := idx.RangeFrom(keys.TimestampKey(time.Now()))
	shortLayovers, _ := index.Build(items, index.ByGroundTime)
	quick, _ := shortLayovers.RangeBefore(keys.IntegerKey(120))

Key functions must return values scaled by keys.Scale. A key function that
does not leave room for the ordinal produces colliding keys; on a collision the
later element replaces the earlier one.

An index cannot be updated. Build a new one to reflect new data; ordinals are
assigned from 1 again.
*/
package index
