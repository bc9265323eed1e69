package dilu

// EvaluateResiduals scores every candidate in c against A and the
// current factor f, writing A[row,col] minus the dot product of the
// two rows' already-factored prefixes into c.Val[e] in place. Each
// candidate is evaluated by exactly one goroutine; there is no
// cross-candidate synchronization since candidates never alias a
// Factor slot (they are, by construction, coordinates F does not yet
// have).
func EvaluateResiduals(a *CSR, f *Factor, c *CandidateSet, workers int) error {
	forEachIndex(c.Len(), workers, func(e int) {
		row := c.RowIdx[e]
		col := c.Col[e]
		sum, _, _ := dualMergeWalk(f, row, col)
		c.Val[e] = a.Get(row, col) - sum
	})
	return nil
}

// dualMergeWalk walks the chains of rows r and c of f in lockstep,
// advancing whichever cursor sits at the smaller column, accumulating
// the product of entries where the two chains land on the same column.
// It returns the accumulated sum, the value of the final match (which
// is spurious self-overlap when r and c already share a live entry,
// e.g. during the sweep), and the c-chain slot the walk stood on when
// it stopped. The sweep uses that last slot, jold, as F[c,c] to divide
// an off-diagonal update by; the residual evaluator ignores it, since a
// not-yet-inserted candidate never shares a column with its own c-chain
// diagonal.
func dualMergeWalk(f *Factor, r, c int) (sum, lastMatch complex128, jold int) {
	i := f.Head[r]
	j := f.Head[c]
	for {
		lastMatch = 0
		jold = j
		icol := f.Col[i]
		jcol := f.Col[j]
		switch {
		case icol == jcol:
			lastMatch = f.Val[i] * f.Val[j]
			sum += lastMatch
			i = f.Next[i]
			j = f.Next[j]
		case icol < jcol:
			i = f.Next[i]
		default:
			j = f.Next[j]
		}
		if i == NIL || j == NIL {
			break
		}
	}
	return sum, lastMatch, jold
}
