// Package candidates implements the streaming candidate enumerator that sits
// between a wordindex.Index and the fill engine: given a Slot's current
// Pattern, it produces the dictionary words that could legally occupy that
// slot, either in the index's own deterministic build order or shuffled
// under a caller-supplied random source.
package candidates

import (
	"iter"
	"math/rand/v2"

	"github.com/aleris/xwords/wordindex"
)

// Generator enumerates candidate words for a pattern against a fixed Index.
// A Generator with a nil random source streams in deterministic order; one
// constructed via WithRandom shuffles each call's results under that source.
type Generator struct {
	index *wordindex.Index
	rnd   *rand.Rand
}

// New returns a deterministic Generator over index.
func New(index *wordindex.Index) *Generator {
	return &Generator{index: index}
}

// WithRandom returns a copy of g that shuffles candidates using rnd. Passing
// the same rnd to Candidates calls in a fixed order makes the shuffled
// sequences reproducible for a given seed.
func (g *Generator) WithRandom(rnd *rand.Rand) *Generator {
	return &Generator{index: g.index, rnd: rnd}
}

// Candidates streams the dictionary words matching pattern. In deterministic
// mode this is a thin pass-through over the index's own traversal order and
// allocates nothing beyond what Match already allocates; in randomized mode
// it must materialize the full match set before it can shuffle it.
func (g *Generator) Candidates(pattern wordindex.Pattern) iter.Seq[string] {
	if g.rnd == nil {
		return g.index.Match(pattern)
	}
	return func(yield func(string) bool) {
		var words []string
		for w := range g.index.Match(pattern) {
			words = append(words, w)
		}
		g.rnd.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
		for _, w := range words {
			if !yield(w) {
				return
			}
		}
	}
}

// Count returns the number of dictionary words matching pattern. It streams
// the match set rather than materializing it, so counting costs no more
// than Match itself.
func (g *Generator) Count(pattern wordindex.Pattern) int {
	n := 0
	for range g.index.Match(pattern) {
		n++
	}
	return n
}
