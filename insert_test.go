package dilu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each test below builds a Factor by hand with one pre-freed spare slot
// (the arena's last slot, Next == -1) standing in for what
// RemoveBelowThreshold would have produced, and a two-entry CandidateSet
// so numRM (1) stays strictly below c.Len(): one real candidate padded
// by a low-magnitude decoy, or, in the duplicate test, a duplicate
// followed by a real candidate.

func TestInsertCandidates_HeadInsertion(t *testing.T) {
	// row1 currently holds only its diagonal at column 1; inserting
	// column 0 must become the new head.
	f := newRawFactor(
		[]complex128{0, 1, 1, 2, 3, 100, 0},
		[]int{0, 0, 1, 0, 1, 2, 0},
		[]int{0, 0, 1, 2, 2, 2, 0},
		[]int{0, 0, 0, 4, 5, 0, -1},
		[]int{1, 2, 3},
		3,
	)

	c := &CandidateSet{
		Val:    []complex128{5, 0.1},
		RowIdx: []int{1, 0},
		Col:    []int{0, 0},
	}

	inserted, err := InsertCandidates(f, c, []int{6, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	assert.Equal(t, 6, f.Head[1])
	assert.Equal(t, 0, f.Col[6])
	assert.Equal(t, 1, f.RowIdx[6])
	assert.Equal(t, 2, f.Next[6]) // old head (the diagonal slot)
}

func TestInsertCandidates_ChainSplice(t *testing.T) {
	// row2 already has columns {0, 2, 4}; inserting column 1 must
	// splice in between columns 0 and 2 without disturbing the rest.
	f := newRawFactor(
		[]complex128{0, 10, 20, 30, 40, 0},
		[]int{0, 0, 0, 2, 4, 0},
		[]int{0, 2, 2, 2, 2, 0},
		[]int{0, 3, 0, 4, 0, -1},
		[]int{0, 0, 1},
		3,
	)
	f.Head[2] = 1

	c := &CandidateSet{
		Val:    []complex128{9, 0.1},
		RowIdx: []int{2, 0},
		Col:    []int{1, 0},
	}

	inserted, err := InsertCandidates(f, c, []int{5, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	var cols []int
	it := f.Walk(2)
	for {
		s, ok, err := it()
		require.NoError(t, err)
		if !ok {
			break
		}
		cols = append(cols, f.Col[s])
	}
	assert.Equal(t, []int{0, 1, 2, 4}, cols)
}

func TestInsertCandidates_DuplicateResistance(t *testing.T) {
	// row1 holds columns {0, 2}; a duplicate candidate at (1,0) has the
	// larger magnitude and so sorts to the front, where it must be
	// skipped without consuming the freed slot — which the next
	// candidate, (1,1), then uses instead.
	f := newRawFactor(
		[]complex128{0, 7, 50, 0},
		[]int{0, 0, 2, 0},
		[]int{0, 1, 1, 0},
		[]int{0, 2, 0, -1},
		[]int{0, 1, 0},
		3,
	)

	c := &CandidateSet{
		Val:    []complex128{9, 5},
		RowIdx: []int{1, 1},
		Col:    []int{0, 1},
	}

	inserted, err := InsertCandidates(f, c, []int{3}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, f.Col[3])
	assert.Equal(t, 1, f.RowIdx[3])

	var cols []int
	it := f.Walk(1)
	for {
		s, ok, err := it()
		require.NoError(t, err)
		if !ok {
			break
		}
		cols = append(cols, f.Col[s])
	}
	assert.Equal(t, []int{0, 1, 2}, cols)
}
