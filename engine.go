package dilu

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Phase names the state the engine's outer loop last reached, mirroring
// the teacher's PivotSelectionMethod-style single-letter status byte but
// spelled out since there is no tight inner loop here to keep it terse
// for.
type Phase int

const (
	PhaseInitialized Phase = iota
	PhaseSwept
	PhaseCandidatesFound
	PhaseResidualsScored
	PhaseThresholdSet
	PhaseRemoved
	PhaseInserted
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialized:
		return "Initialized"
	case PhaseSwept:
		return "Swept"
	case PhaseCandidatesFound:
		return "CandidatesFound"
	case PhaseResidualsScored:
		return "ResidualsScored"
	case PhaseThresholdSet:
		return "ThresholdSet"
	case PhaseRemoved:
		return "Removed"
	case PhaseInserted:
		return "Inserted"
	default:
		return "Unknown"
	}
}

// Engine drives one dynamic incomplete-factorization pattern (F) toward
// a better approximation of A, one outer iteration — sweep, find
// candidates, score residuals, set threshold, remove, insert — at a
// time. It plays the role the teacher's Matrix.OrderAndFactor plays for
// static factorization: the single entry point that sequences the
// phases and reports what happened.
type Engine struct {
	A      *CSR
	F      *Factor
	Config Config

	phase Phase

	lastCandidates int
	lastRemoved    int
	lastInserted   int
	lastThreshold  complex128

	// LastDefects holds the slot ids Sweep flagged as numerically
	// defective during the most recent Step, in addition to whatever
	// value cmplx.Sqrt left behind for them.
	LastDefects []int
}

// NewEngine wraps a system matrix and an initial factor pattern for
// iterative refinement. cfg.Debug, if set, is propagated onto f so the
// arena's own double-free check (see Factor.FreeSlot) takes effect for
// the engine's lifetime even if f was built with debug off.
func NewEngine(a *CSR, f *Factor, cfg Config) *Engine {
	if cfg.Debug {
		f.debug = true
	}
	return &Engine{A: a, F: f, Config: cfg, phase: PhaseInitialized}
}

// Phase reports the state the engine last reached.
func (e *Engine) Phase() Phase { return e.phase }

// Step advances the factor through exactly one outer iteration,
// targeting numRM removals/insertions. It returns ErrEmptyCandidateSet
// if the candidate set produced this iteration is too small to support
// numRM insertions — callers running Step in a loop should treat that
// as convergence, not failure.
func (e *Engine) Step(ctx context.Context, numRM int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	workers := e.Config.Workers

	e.LastDefects = Sweep(e.A, e.F, workers)
	e.phase = PhaseSwept

	if err := ctx.Err(); err != nil {
		return err
	}

	cset, err := FindCandidates(e.F, workers)
	if err != nil {
		return fmt.Errorf("dilu: find candidates: %w", err)
	}
	e.phase = PhaseCandidatesFound
	e.lastCandidates = cset.Len()

	if numRM >= cset.Len() {
		return ErrEmptyCandidateSet
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := EvaluateResiduals(e.A, e.F, cset, workers); err != nil {
		return fmt.Errorf("dilu: evaluate residuals: %w", err)
	}
	e.phase = PhaseResidualsScored

	if err := ctx.Err(); err != nil {
		return err
	}

	thrs := e.F.SetThreshold(numRM, e.Config)
	e.lastThreshold = thrs
	e.phase = PhaseThresholdSet

	if err := ctx.Err(); err != nil {
		return err
	}

	rmLoc := RemoveBelowThreshold(e.F, thrs, workers)
	e.lastRemoved = len(rmLoc)
	e.phase = PhaseRemoved

	if err := ctx.Err(); err != nil {
		return err
	}

	inserted, err := InsertCandidates(e.F, cset, rmLoc, numRM)
	if err != nil {
		return fmt.Errorf("dilu: insert candidates: %w", err)
	}
	e.lastInserted = inserted
	e.phase = PhaseInserted

	if e.Config.Annotate > 0 {
		e.WriteStatus(os.Stdout, numRM)
	}

	if len(e.LastDefects) > 0 {
		return fmt.Errorf("%w: %d slot(s)", ErrNumericDefect, len(e.LastDefects))
	}

	return nil
}

// Run calls Step repeatedly, up to iterations times or until stop
// reports true before a given iteration starts. ErrEmptyCandidateSet
// from Step ends the run and is treated as convergence, reported as a
// nil error; ErrNumericDefect is treated like a clean step and the run
// goes on; any other error from Step stops the run and is returned.
func (e *Engine) Run(ctx context.Context, numRM, iterations int, stop func(iter int, eng *Engine) bool) error {
	for it := 0; it < iterations; it++ {
		if stop != nil && stop(it, e) {
			return nil
		}
		if err := e.Step(ctx, numRM); err != nil {
			if errors.Is(err, ErrEmptyCandidateSet) {
				return nil
			}
			if errors.Is(err, ErrNumericDefect) {
				continue
			}
			return err
		}
	}
	return nil
}
