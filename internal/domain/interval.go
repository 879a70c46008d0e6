package domain

import "time"

// Overlaps reports whether the [dep1, arr1) and [dep2, arr2) windows
// intersect. Touching endpoints are not an overlap: a back-to-back
// turnaround (arr1 == dep2) is legal. Every conflict check in the system
// goes through this predicate so the tie-break rule cannot drift between
// the aircraft and crew paths.
func Overlaps(dep1, arr1, dep2, arr2 time.Time) bool {
	return dep1.Before(arr2) && arr1.After(dep2)
}
