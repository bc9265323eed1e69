package dilu

import (
	"math"
	"math/cmplx"
)

// SetThreshold computes tau, the |Val| order statistic at 0-based index
// numRM (so the (numRM+1)-th smallest) across the factor's full slot arena — including slot 0 and any already-freed
// slots — on a private copy, so the factor's own Val slice is never
// permuted by selection. tau is then floored against cfg's magnitude
// gate: max(AbsThreshold, RelThreshold * the arena's largest
// magnitude), mirroring the teacher's RelThreshold/AbsThreshold pivot
// gate (pivot.go, now removed along with pivoting itself — see
// DESIGN.md) so an overly permissive numRM can never drive the
// removal threshold below a floor the caller configured.
func (f *Factor) SetThreshold(numRM int, cfg Config) complex128 {
	cp := make([]complex128, len(f.Val))
	copy(cp, f.Val)
	tau := quickselectByMagnitude(cp, numRM, false)

	var maxMag float64
	for _, v := range f.Val {
		if m := cmplx.Abs(v); m > maxMag {
			maxMag = m
		}
	}
	floor := math.Max(cfg.AbsThreshold, cfg.RelThreshold*maxMag)
	if cmplx.Abs(tau) < floor {
		return complex(floor, 0)
	}
	return tau
}

// SelectTopCandidates reorders c in place so its first numRM entries
// are the numRM candidates with the largest |Val|, permuting RowIdx and
// Col alongside Val so each residual stays paired with its coordinate.
func SelectTopCandidates(c *CandidateSet, numRM int) {
	quickselectByMagnitude(c.Val, numRM, true, c.RowIdx, c.Col)
}

// quickselectByMagnitude partitions vals (and any parallel companion
// index slices, permuted in lockstep) so that vals[k] holds the k-th
// order statistic by magnitude — descending when largestFirst is true,
// ascending otherwise — using Hoare-partition quickselect. No
// order-statistic library exists anywhere in the retrieved example
// pack, so this is a from-scratch implementation of the same
// quickselect-with-a-direction-flag the reference routine uses.
func quickselectByMagnitude(vals []complex128, k int, largestFirst bool, companions ...[]int) complex128 {
	mag := make([]float64, len(vals))
	for i, v := range vals {
		mag[i] = cmplx.Abs(v)
	}

	swap := func(i, j int) {
		vals[i], vals[j] = vals[j], vals[i]
		mag[i], mag[j] = mag[j], mag[i]
		for _, comp := range companions {
			comp[i], comp[j] = comp[j], comp[i]
		}
	}

	lo, hi := 0, len(vals)-1
	for lo < hi {
		pivotMag := mag[lo+(hi-lo)/2]
		i, j := lo, hi
		for i <= j {
			for before(mag[i], pivotMag, largestFirst) {
				i++
			}
			for before(pivotMag, mag[j], largestFirst) {
				j--
			}
			if i <= j {
				swap(i, j)
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			lo, hi = k, k
		}
	}
	return vals[k]
}

// before reports whether a sorts strictly ahead of b under the
// requested direction: descending magnitude when largestFirst, else
// ascending.
func before(a, b float64, largestFirst bool) bool {
	if largestFirst {
		return a > b
	}
	return a < b
}
