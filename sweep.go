package dilu

import (
	"math/cmplx"
	"sync"
)

// Sweep performs one asynchronous Jacobi-style fixed-point update of
// every live slot in f, reading and writing Val with no synchronization
// beyond what the platform already gives complex128 loads and stores —
// deliberate chaotic-relaxation semantics, not a bug (see SPEC_FULL.md §4.6).
// It returns the slots where a diagonal update produced a numeric
// defect (a negative-real argument to Sqrt); it does not stop or
// correct the sweep because of one.
func Sweep(a *CSR, f *Factor, workers int) []int {
	var mu sync.Mutex
	var defects []int

	forEachIndex(len(f.Next), workers, func(e int) {
		if e == NIL || f.Next[e] == -1 {
			return
		}
		r := f.RowIdx[e]
		c := f.Col[e]

		sum, lastMatch, jold := dualMergeWalk(f, r, c)
		corrected := sum - lastMatch

		if r == c {
			arg := a.Get(r, c) - corrected
			if real(arg) < 0 {
				mu.Lock()
				defects = append(defects, e)
				mu.Unlock()
			}
			f.Val[e] = cmplx.Sqrt(arg)
		} else {
			f.Val[e] = (a.Get(r, c) - corrected) / f.Val[jold]
		}
	})

	return defects
}
