package stop

import (
	"cmp"
	"slices"
)

// Ordered returns the stops in route order: by orderIndex, then by id.
// The input slice is left untouched. Gaps and duplicate indices are fine.
func Ordered(stops []*Stop) []*Stop {
	out := slices.Clone(stops)
	slices.SortStableFunc(out, compare)
	return out
}

func compare(a, b *Stop) int {
	if c := cmp.Compare(a.orderIndex, b.orderIndex); c != 0 {
		return c
	}
	switch {
	case a.id.Less(b.id):
		return -1
	case b.id.Less(a.id):
		return 1
	default:
		return 0
	}
}
