package dilu

import (
	"fmt"
	"sort"
	"sync"
)

// NIL is the permanent end-of-row / empty-slot sentinel. Slot 0 is
// never part of any row's chain and is never written to by any phase.
const NIL = 0

// Factor is the dynamic, pool-allocated sparse lower-triangular factor
// the engine maintains between outer iterations: four parallel arrays
// indexed by slot id, plus one head-of-row array. A slot is live when
// it is reachable from some row's Head through Next; a freed slot has
// Next == -1 and stays out of every row's chain until the inserter
// reclaims it.
type Factor struct {
	Val    []complex128
	Col    []int
	RowIdx []int
	Next   []int
	Head   []int

	NumRows int
	debug   bool

	rowLocks  []sync.Mutex
	counterMu sync.Mutex
}

// RowEntry is one (column, value) pair used to seed a row of an initial
// factor pattern.
type RowEntry struct {
	Col int
	Val complex128
}

// NewFactorFromRows builds a Factor from an initial lower-triangular
// pattern: rows[r] lists the live entries of row r, which must include
// the diagonal (Col == r) and must satisfy Col <= r for every entry.
// Entries need not be pre-sorted; NewFactorFromRows sorts each row by
// column before threading the arena.
func NewFactorFromRows(rows [][]RowEntry, debug bool) (*Factor, error) {
	numRows := len(rows)
	nnz := 0
	for _, row := range rows {
		nnz += len(row)
	}

	f := &Factor{
		Val:      make([]complex128, nnz+1),
		Col:      make([]int, nnz+1),
		RowIdx:   make([]int, nnz+1),
		Next:     make([]int, nnz+1),
		Head:     make([]int, numRows),
		NumRows:  numRows,
		debug:    debug,
		rowLocks: make([]sync.Mutex, numRows),
	}

	slot := 1
	for r, row := range rows {
		sorted := make([]RowEntry, len(row))
		copy(sorted, row)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Col < sorted[j].Col })

		hasDiag := false
		prevCol := -1
		for _, e := range sorted {
			if e.Col > r {
				return nil, fmt.Errorf("%w: row %d has entry at column %d above the diagonal", ErrPrecondViolated, r, e.Col)
			}
			if e.Col == prevCol {
				return nil, fmt.Errorf("%w: row %d has duplicate column %d", ErrPrecondViolated, r, e.Col)
			}
			prevCol = e.Col
			if e.Col == r {
				hasDiag = true
			}
		}
		if !hasDiag {
			return nil, fmt.Errorf("%w: row %d missing diagonal", ErrPrecondViolated, r)
		}

		f.Head[r] = slot
		for i, e := range sorted {
			f.Col[slot] = e.Col
			f.RowIdx[slot] = r
			f.Val[slot] = e.Val
			if i == len(sorted)-1 {
				f.Next[slot] = NIL
			} else {
				f.Next[slot] = slot + 1
			}
			slot++
		}
	}

	return f, nil
}

// HeadOf returns the slot id at the head of row's chain, or NIL if the
// row somehow has no live entries.
func (f *Factor) HeadOf(row int) int { return f.Head[row] }

// Walk returns a pull-iterator over the live slots of row, in ascending
// column order, terminating when ok is false. Cheap: the only
// allocation is the closure itself. With debug enabled, each step
// checks the visited slot's RowIdx against row and reports
// ErrCorruptLink instead of yielding a slot if they disagree; with
// debug off the check is skipped entirely, so the hot path pays nothing
// for it.
func (f *Factor) Walk(row int) func() (slot int, ok bool, err error) {
	cur := f.Head[row]
	return func() (int, bool, error) {
		if cur == NIL {
			return 0, false, nil
		}
		s := cur
		if f.debug && f.RowIdx[s] != row {
			return 0, false, fmt.Errorf("%w: slot %d claims row %d, walked under row %d", ErrCorruptLink, s, f.RowIdx[s], row)
		}
		cur = f.Next[cur]
		return s, true, nil
	}
}

// FreeSlot marks s as available for reuse by the inserter: its value is
// cleared and its Next is set to -1, taking it out of whatever row's
// chain it used to belong to. Callers are responsible for unlinking s
// from that chain first. With debug enabled, freeing an already-freed
// slot panics instead of silently corrupting the arena.
func (f *Factor) FreeSlot(s int) {
	if f.debug && f.Next[s] == -1 {
		panic(fmt.Errorf("%w: slot %d freed twice", ErrCorruptLink, s))
	}
	f.Val[s] = 0
	f.Next[s] = -1
}

// SpliceAfter links newSlot into the chain immediately after prevSlot,
// taking over prevSlot's old successor.
func (f *Factor) SpliceAfter(prevSlot, newSlot int) {
	f.Next[newSlot] = f.Next[prevSlot]
	f.Next[prevSlot] = newSlot
}

// SetHead makes s the first slot of row's chain.
func (f *Factor) SetHead(row, s int) {
	f.Head[row] = s
}

func (f *Factor) lockRow(row int)   { f.rowLocks[row].Lock() }
func (f *Factor) unlockRow(row int) { f.rowLocks[row].Unlock() }

// hasEntry reports whether row currently has a live slot at col.
func (f *Factor) hasEntry(row, col int) bool {
	next := f.Walk(row)
	for {
		s, ok, err := next()
		if err != nil {
			panic(err)
		}
		if !ok {
			return false
		}
		if f.Col[s] == col {
			return true
		}
	}
}

// LiveCount walks every row and counts its reachable slots. O(nnz); the
// teacher tracks Elements/Fillins incrementally, but this factor's
// live count changes shape every outer iteration so there is no cheap
// running total to maintain.
func (f *Factor) LiveCount() int {
	count := 0
	for r := 0; r < f.NumRows; r++ {
		next := f.Walk(r)
		for {
			_, ok, err := next()
			if err != nil {
				panic(err)
			}
			if !ok {
				break
			}
			count++
		}
	}
	return count
}

// Validate walks every row checking that slots are visited at most
// once, that each slot's recorded RowIdx agrees with the row it was
// reached from, and that columns strictly increase and never exceed
// the row index. Intended for debug builds and tests, not the hot
// path; returns ErrCorruptLink wrapped with detail on the first
// violation found.
func (f *Factor) Validate() error {
	seen := make([]bool, len(f.Next))
	for r := 0; r < f.NumRows; r++ {
		prevCol := -1
		for s := f.Head[r]; s != NIL; s = f.Next[s] {
			if seen[s] {
				return fmt.Errorf("%w: slot %d visited twice", ErrCorruptLink, s)
			}
			seen[s] = true
			if f.RowIdx[s] != r {
				return fmt.Errorf("%w: slot %d claims row %d, walked under row %d", ErrCorruptLink, s, f.RowIdx[s], r)
			}
			if f.Col[s] <= prevCol {
				return fmt.Errorf("%w: row %d columns not strictly increasing at slot %d", ErrCorruptLink, r, s)
			}
			if f.Col[s] > f.RowIdx[s] {
				return fmt.Errorf("%w: slot %d has col %d above row %d", ErrCorruptLink, s, f.Col[s], f.RowIdx[s])
			}
			prevCol = f.Col[s]
		}
	}
	return nil
}

// Entry is one (column, value) pair returned by SortedRows.
type Entry struct {
	Col int
	Val complex128
}

// SortedRows returns, for each row, the live (col, val) pairs in
// ascending column order — the traversal a consumer expecting ordered
// output must do itself, since Factor never sorts or compacts.
func (f *Factor) SortedRows() [][]Entry {
	rows := make([][]Entry, f.NumRows)
	for r := 0; r < f.NumRows; r++ {
		next := f.Walk(r)
		for {
			s, ok, err := next()
			if err != nil {
				panic(err)
			}
			if !ok {
				break
			}
			rows[r] = append(rows[r], Entry{Col: f.Col[s], Val: f.Val[s]})
		}
	}
	return rows
}
