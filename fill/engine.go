// Package fill implements the best-first backtracking search that assigns
// dictionary words to every Unknown slot of a grid.Grid, consulting a
// wordindex.Index through a candidates.Generator and rolling back through
// the grid's undo log on dead ends.
package fill

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aleris/xwords/candidates"
	"github.com/aleris/xwords/grid"
	"github.com/aleris/xwords/wordindex"
)

// DefaultTimeout is the soft wall-clock budget the engine applies when ctx
// carries no deadline of its own, matching this lineage's historical default.
const DefaultTimeout = 2 * time.Minute

// DefaultThroughputLogEvery is how many candidates elapse between the
// engine's periodic "candidates/ms" log line during a long fill.
const DefaultThroughputLogEvery = 10000

// Options configures one Fill call. The zero value fills deterministically.
type Options struct {
	// Randomize enables randomized tie-breaking and candidate order.
	Randomize bool
	// Seed seeds the random source when Randomize is set. The core never
	// pulls randomness from an ambient process-global source; a caller
	// that wants OS-seeded randomness (the CLI does, absent --seed) must
	// generate the seed itself and pass it here.
	Seed *uint64
	// ThroughputLogEvery overrides DefaultThroughputLogEvery; zero keeps
	// the default.
	ThroughputLogEvery int
	// Logger receives the engine's structured log lines; nil uses
	// log.Default().
	Logger *log.Logger
}

// Fill runs the search against g and ix. On success it returns a new Grid
// in which every slot is filled; an Unknown cell that belongs to no slot is
// left Unknown. g itself is never mutated. Failure is reported as
// ErrInfeasible, ErrCancelled, or a *grid.StructuralError, never a panic.
func Fill(ctx context.Context, g *grid.Grid, ix *wordindex.Index, opts Options) (*grid.Grid, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := checkSlotLengths(g, ix); err != nil {
		logger.Debug("fill: structural error", "err", err)
		return nil, err
	}

	working := g.Clone()

	if !allDecidedSlotsMatch(working, ix) {
		logger.Debug("fill: infeasible, a pre-filled slot is not a dictionary word")
		return nil, ErrInfeasible
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	gen := candidates.New(ix)
	var rnd *rand.Rand
	if opts.Randomize {
		var seed uint64
		if opts.Seed != nil {
			seed = *opts.Seed
		}
		rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		gen = gen.WithRandom(rnd)
	}

	throughputEvery := opts.ThroughputLogEvery
	if throughputEvery <= 0 {
		throughputEvery = DefaultThroughputLogEvery
	}

	e := &engine{
		index:           ix,
		gen:             gen,
		rnd:             rnd,
		randomize:       opts.Randomize,
		throughputEvery: throughputEvery,
		logger:          logger,
		start:           time.Now(),
	}

	logger.Debug("fill: starting", "unknownSlots", len(unknownSlots(working)))

	ok, err := e.search(ctx, working)
	if err != nil {
		logger.Debug("fill: cancelled", "candidates", e.candidateCount)
		// Every write search made is already undone by the time an error
		// propagates out of it (each recursive frame unwinds its own tag on
		// the way back up), so working is back to g's pre-fill state here.
		return working, ErrCancelled
	}
	if !ok {
		logger.Debug("fill: infeasible", "candidates", e.candidateCount)
		return nil, ErrInfeasible
	}
	logger.Debug("fill: solved", "candidates", e.candidateCount, "elapsed", time.Since(e.start))
	return working, nil
}

// engine carries the search's mutable bookkeeping across recursive calls.
// One engine instance is used for exactly one Fill call and is never shared.
type engine struct {
	index *wordindex.Index
	gen   *candidates.Generator
	rnd   *rand.Rand

	randomize bool

	nextTag         uint64
	candidateCount  int
	throughputEvery int

	logger *log.Logger
	start  time.Time
}

// search descends one ply: pick the most-constrained Unknown slot, try its
// candidates in order, and recurse. It returns (true, nil) once no Unknown
// slot remains, (false, nil) once every ordering from here is exhausted,
// and a non-nil error only when ctx ends the search early.
func (e *engine) search(ctx context.Context, g *grid.Grid) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	slot, count := e.pickSlot(g)
	if slot == nil {
		return true, nil
	}
	if count == 0 {
		return false, nil
	}

	pattern := slot.Pattern(g)
	for word := range e.gen.Candidates(pattern) {
		e.candidateCount++
		if e.candidateCount%e.throughputEvery == 0 {
			elapsed := time.Since(e.start)
			e.logger.Debug("fill: throughput",
				"candidates", e.candidateCount,
				"candidatesPerMs", float64(e.candidateCount)/float64(elapsed.Milliseconds()+1))
		}

		tag := e.nextTag
		e.nextTag++

		if !e.place(g, slot, word, tag) {
			continue
		}

		ok, err := e.search(ctx, g)
		if err != nil {
			g.UndoTo(tag)
			return false, err
		}
		if ok {
			return true, nil
		}
		g.UndoTo(tag)

		if err := ctx.Err(); err != nil {
			return false, err
		}
	}

	return false, nil
}

// pickSlot applies the fail-first heuristic: the Unknown slot with the
// fewest currently-matching candidates, ties broken by slot ID (ascending,
// which g.Slots() already enumerates in) or, in randomized mode, broken
// randomly. It returns (nil, 0) once every slot is decided.
func (e *engine) pickSlot(g *grid.Grid) (*grid.Slot, int) {
	var best *grid.Slot
	bestCount := -1
	var ties []*grid.Slot

	for _, s := range g.Slots() {
		pattern := s.Pattern(g)
		if !pattern.HasWildcard() {
			continue
		}
		n := e.gen.Count(pattern)
		switch {
		case bestCount == -1 || n < bestCount:
			bestCount = n
			ties = ties[:0]
			ties = append(ties, s)
		case n == bestCount:
			ties = append(ties, s)
		}
	}

	if bestCount == -1 {
		return nil, 0
	}
	if len(ties) == 1 || !e.randomize {
		best = ties[0]
	} else {
		best = ties[e.rnd.IntN(len(ties))]
	}
	return best, bestCount
}

// place writes word into slot's still-Unknown cells under tag, then
// verifies every crossing slot is still satisfiable. If any crossing is
// broken, the write is undone and place reports false without side effects
// surviving into the caller.
func (e *engine) place(g *grid.Grid, slot *grid.Slot, word string, tag uint64) bool {
	runes := []rune(word)
	for i, r := range runes {
		row, col := slot.CellAt(i)
		if g.At(row, col).Kind == grid.Unknown {
			g.WriteLetter(row, col, r, tag)
		}
	}

	for i := 0; i < slot.Length; i++ {
		row, col := slot.CellAt(i)
		crossing, ok := g.CrossingAt(row, col)
		if !ok {
			continue
		}
		crossSlot := crossing.DownSlot
		if slot.Dir == grid.Down {
			crossSlot = crossing.AcrossSlot
		}
		if !e.index.HasMatch(crossSlot.Pattern(g)) {
			g.UndoTo(tag)
			return false
		}
	}
	return true
}

// checkSlotLengths reports a StructuralError for any slot still needing a
// fill whose length the dictionary has no words of at all — an unfillable
// request, not a search failure. An entirely empty dictionary is not a
// structural problem with the grid; it is left to fall through to the
// search itself, which reports it as ErrInfeasible.
func checkSlotLengths(g *grid.Grid, ix *wordindex.Index) error {
	if ix.Size() == 0 {
		return nil
	}
	for _, s := range g.Slots() {
		if !s.Pattern(g).HasWildcard() {
			continue
		}
		if !ix.HasLength(s.Length) {
			return &grid.StructuralError{Msg: slotLengthErrorMsg(s)}
		}
	}
	return nil
}

func slotLengthErrorMsg(s *grid.Slot) string {
	return fmt.Sprintf("fill: %s slot of length %d at (%d,%d) has no dictionary words of that length", s.Dir, s.Length, s.Row, s.Col)
}

// allDecidedSlotsMatch reports whether every slot with no Unknown cell
// already spells a dictionary word. Fixed letters are constraints the
// engine never overwrites, so a fully-decided slot that fails this check
// can never be repaired by the search and the fill is infeasible before it
// starts.
func allDecidedSlotsMatch(g *grid.Grid, ix *wordindex.Index) bool {
	for _, s := range g.Slots() {
		pattern := s.Pattern(g)
		if pattern.HasWildcard() {
			continue
		}
		if !ix.HasMatch(pattern) {
			return false
		}
	}
	return true
}

// unknownSlots returns every slot with at least one Unknown cell, for the
// entry-log line only; the search itself recomputes this per ply since
// candidate counts change as cells are written.
func unknownSlots(g *grid.Grid) []*grid.Slot {
	var out []*grid.Slot
	for _, s := range g.Slots() {
		if s.Pattern(g).HasWildcard() {
			out = append(out, s)
		}
	}
	return out
}
