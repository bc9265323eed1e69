package dilu

// InsertCandidates consumes up to numRM of the top-magnitude candidates
// in c (selected via SelectTopCandidates) and numRM of the freed slots
// in rmLoc, splicing each candidate into f at its natural
// column-ordered position. It returns the number actually inserted,
// which is less than numRM only when candidates whose row already holds
// that column use up the candidate list before numRM insertions are made.
//
// The candidate cursor i and the inserted-count cursor used to index
// rmLoc advance independently, exactly as the reference inserter does:
// a duplicate candidate advances i without advancing the insertion
// count, so the freed slot that would have been consumed is retried
// against the next candidate instead of being reclaimed immediately.
// This is not "fixed" here; see DESIGN.md.
func InsertCandidates(f *Factor, c *CandidateSet, rmLoc []int, numRM int) (inserted int, err error) {
	if numRM >= c.Len() {
		return 0, ErrEmptyCandidateSet
	}
	if len(rmLoc) < numRM {
		return 0, ErrAllocationFailed
	}

	SelectTopCandidates(c, numRM)

	i := 0
	for inserted < numRM {
		if i >= c.Len() {
			break
		}

		loc := rmLoc[inserted]
		newRow := c.RowIdx[i]
		newCol := c.Col[i]

		f.lockRow(newRow)
		oldStart := f.Head[newRow]

		switch {
		case newCol < f.Col[oldStart]:
			f.Next[loc] = oldStart
			f.RowIdx[loc] = newRow
			f.Col[loc] = newCol
			f.Val[loc] = 0
			f.SetHead(newRow, loc)
			inserted++

		case newCol == f.Col[oldStart]:
			// duplicate at row start; loc is retried against the next candidate.

		default:
			j := oldStart
			jn := f.Next[j]
			for j != NIL {
				if f.Col[jn] == newCol {
					break
				}
				if f.Col[jn] > newCol {
					f.RowIdx[loc] = newRow
					f.Col[loc] = newCol
					f.Val[loc] = 0
					f.SpliceAfter(j, loc)
					inserted++
					break
				}
				j = jn
				jn = f.Next[jn]
			}
		}

		f.unlockRow(newRow)
		i++
	}

	return inserted, nil
}
