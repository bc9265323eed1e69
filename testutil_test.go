package dilu

import "sync"

// newArrowFactor builds the minimal structure that produces exactly one
// fill candidate: row 2 has two off-diagonal entries (columns 0 and 1),
// so eliminating it implies a fill at (1,0) if F doesn't already have
// it. Used by the candidate finder, residual evaluator and engine
// tests.
func newArrowFactor() *Factor {
	f, err := NewFactorFromRows([][]RowEntry{
		{{Col: 0, Val: 1}},
		{{Col: 1, Val: 1}},
		{{Col: 0, Val: 2}, {Col: 1, Val: 3}, {Col: 2, Val: 100}},
	}, false)
	if err != nil {
		panic(err)
	}
	return f
}

func newArrowCSR() *CSR {
	return CSRFromDense([][]complex128{
		{1, 0, 2},
		{5, 1, 3},
		{2, 3, 100},
	})
}

// newTridiagonalFactor builds a bidiagonal initial factor pattern (each
// row carries only its diagonal and the entry immediately to its left)
// for the SPD tridiagonal system newTridiagonalCSR returns. This
// pattern produces zero fill candidates and, run with a single worker,
// its sweep reduces to a textbook sequential tridiagonal Cholesky pass.
func newTridiagonalFactor() *Factor {
	f, err := NewFactorFromRows([][]RowEntry{
		{{Col: 0, Val: 0}},
		{{Col: 0, Val: 0}, {Col: 1, Val: 0}},
		{{Col: 1, Val: 0}, {Col: 2, Val: 0}},
		{{Col: 2, Val: 0}, {Col: 3, Val: 0}},
		{{Col: 3, Val: 0}, {Col: 4, Val: 0}},
	}, false)
	if err != nil {
		panic(err)
	}
	return f
}

func newTridiagonalCSR() *CSR {
	return CSRFromDense([][]complex128{
		{10, 4, 0, 0, 0},
		{4, 20, 5, 0, 0},
		{0, 5, 30, 2, 0},
		{0, 0, 2, 40, 6},
		{0, 0, 0, 6, 50},
	})
}

// newRawFactor builds a Factor from explicit parallel arrays without
// going through NewFactorFromRows, for tests that need a pre-freed
// spare slot already sitting in the arena (the insertion tests).
func newRawFactor(val []complex128, col, rowIdx, next, head []int, numRows int) *Factor {
	return &Factor{
		Val:      val,
		Col:      col,
		RowIdx:   rowIdx,
		Next:     next,
		Head:     head,
		NumRows:  numRows,
		rowLocks: make([]sync.Mutex, numRows),
	}
}
