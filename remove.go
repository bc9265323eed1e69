package dilu

import "math/cmplx"

// RemoveBelowThreshold walks every row in parallel, freeing any slot
// whose magnitude falls strictly below |thrs|, and returns the freed
// slot ids in discovery order. Each row is owned by exactly one
// goroutine for the phase's duration, so no row-level locking is
// needed for the walk itself; only the append to the shared result
// slice is serialized, through the factor's single counter lock.
//
// The walk never inspects a row's last entry — its diagonal, since
// columns increase strictly and the diagonal is always the largest
// column in a lower-triangular row — so the diagonal can never be
// selected for removal here, independent of where tau falls.
func RemoveBelowThreshold(f *Factor, thrs complex128, workers int) []int {
	var rmLoc []int
	threshMag := cmplx.Abs(thrs)

	forEachIndex(f.NumRows, workers, func(r int) {
		i := f.Head[r]
		if i == NIL {
			return
		}
		lasti := i
		nexti := f.Next[i]

		for nexti != NIL {
			if cmplx.Abs(f.Val[i]) < threshMag {
				f.Val[i] = 0
				f.Next[i] = -1

				f.counterMu.Lock()
				rmLoc = append(rmLoc, i)
				f.counterMu.Unlock()

				if f.Head[r] == i {
					f.SetHead(r, nexti)
					lasti = i
					i = nexti
					nexti = f.Next[nexti]
				} else {
					f.Next[lasti] = nexti
					i = nexti
					nexti = f.Next[nexti]
				}
			} else {
				lasti = i
				i = nexti
				nexti = f.Next[nexti]
			}
		}
	})

	return rmLoc
}
