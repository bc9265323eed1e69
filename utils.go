package dilu

import (
	"golang.org/x/exp/constraints"
)

// minOf is the same small generic helper the teacher keeps in utils.go
// (there as a bare `min[T constraints.Ordered]`), used here to cap a
// requested worker count at the amount of work actually available.
func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
