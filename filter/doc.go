// Package filter selects itineraries with composable predicates.
//
// A Predicate evaluates one itinerary. Predicates compose with And, Or and
// Not; FilterAll is Filter over And of a predicate list. Evaluation is
// fail-fast: the first predicate error aborts the whole call and no partial
// result is returned.
//
// Output always preserves input order. ParallelFilter evaluates elements
// concurrently and still returns them in input order.
package filter
