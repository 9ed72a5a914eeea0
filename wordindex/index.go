// Package wordindex implements the dictionary lookup structure the fill
// engine queries: a length-segregated trie over an Alphabet, with every
// node augmented with a per-remaining-depth letter bitset so that the
// common "which letters can go here" query costs a handful of bitset reads
// rather than a scan of the matching word set.
package wordindex

import (
	"iter"
	"sort"
	"strings"
	"unicode"

	"github.com/aleris/xwords/alphabet"
)

// Wildcard stands in for "any letter" in a Pattern. The zero rune never
// appears in a real word, so it is safe to use as the sentinel.
const Wildcard rune = 0

// Pattern is a slot's current contents as seen by the index: known letters
// and Wildcard in the positions still unknown.
type Pattern []rune

// HasWildcard reports whether any position of p is still unresolved.
func (p Pattern) HasWildcard() bool {
	for _, r := range p {
		if r == Wildcard {
			return true
		}
	}
	return false
}

// String renders p as a plain string, with Wildcard positions carrying the
// NUL rune. Since Wildcard never collides with a real letter, this string
// doubles as an exact word (when p has no wildcard) and as a cache key safe
// to use as a map key (whether or not it does).
func (p Pattern) String() string {
	return string(p)
}

// Index answers Exists/Match/PossibleLetters queries against a fixed,
// already-built dictionary. It is immutable and safe to share across
// goroutines once BuildIndex or Load returns it.
type Index struct {
	alphabet *alphabet.Alphabet
	byLength map[int]*lengthTrie
	exists   map[string]struct{}
}

// Alphabet returns the alphabet this index was built over.
func (ix *Index) Alphabet() *alphabet.Alphabet {
	return ix.alphabet
}

// Size returns the number of distinct words retained by the index.
func (ix *Index) Size() int {
	return len(ix.exists)
}

// BuildIndex builds an Index from a raw word list. Words are case-folded
// and deduplicated; words shorter than two letters, or containing a
// character that is not a unicode letter, are dropped (a word with a
// digit or punctuation rune can never be "in Σ", since Σ is exactly the
// set of letters observed across the surviving words).
func BuildIndex(words []string) *Index {
	seen := make(map[string]struct{}, len(words))
	var valid []string
	for _, w := range words {
		folded := alphabet.Fold(strings.TrimSpace(w))
		if !isAllLetters(folded) {
			continue
		}
		if len([]rune(folded)) < 2 {
			continue
		}
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		valid = append(valid, folded)
	}
	// Sort for a reproducible build order, which in turn makes the
	// deterministic candidate generator's traversal order reproducible.
	sort.Strings(valid)

	alpha := alphabet.New(valid)

	byLength := make(map[int]*lengthTrie)
	for _, w := range valid {
		runes := []rune(w)
		lt := byLength[len(runes)]
		if lt == nil {
			lt = newLengthTrie(len(runes))
			byLength[len(runes)] = lt
		}
		lt.insert(runes, alpha)
	}
	for _, lt := range byLength {
		lt.buildDepthSets(alpha)
	}

	return &Index{alphabet: alpha, byLength: byLength, exists: seen}
}

func isAllLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// HasLength reports whether the dictionary contains any word of length L.
func (ix *Index) HasLength(l int) bool {
	_, ok := ix.byLength[l]
	return ok
}

// HasMatch reports whether some dictionary word matches pattern, without
// materializing the full match set.
func (ix *Index) HasMatch(pattern Pattern) bool {
	lt := ix.byLength[len(pattern)]
	if lt == nil {
		return false
	}
	return matchesSuffix(lt.root, pattern, ix.alphabet)
}

// Exists reports whether w, case-folded, is in the dictionary.
func (ix *Index) Exists(w string) bool {
	_, ok := ix.exists[alphabet.Fold(w)]
	return ok
}

// Match streams every word of the dictionary matching pattern (same length,
// every known letter equal, wildcards unconstrained), in the trie's
// alphabet-index child order. The returned sequence allocates no backing
// slice; stopping early (e.g. via break in a range loop) costs nothing
// beyond the prefix already walked.
func (ix *Index) Match(pattern Pattern) iter.Seq[string] {
	return func(yield func(string) bool) {
		lt := ix.byLength[len(pattern)]
		if lt == nil {
			return
		}
		buf := make([]rune, len(pattern))
		var walk func(node *trieNode, depth int) bool
		walk = func(node *trieNode, depth int) bool {
			if depth == len(pattern) {
				if node.terminal {
					return yield(string(buf))
				}
				return true
			}
			if node.children == nil {
				return true
			}
			if pattern[depth] == Wildcard {
				for idx, child := range node.children {
					if child == nil {
						continue
					}
					buf[depth] = ix.alphabet.Letter(idx)
					if !walk(child, depth+1) {
						return false
					}
				}
				return true
			}
			idx, ok := ix.alphabet.IndexOf(pattern[depth])
			if !ok {
				return true
			}
			child := node.children[idx]
			if child == nil {
				return true
			}
			buf[depth] = pattern[depth]
			return walk(child, depth+1)
		}
		walk(lt.root, 0)
	}
}

// PossibleLetters returns the set of letters that can occupy position i of
// pattern in some matching word. It descends the known-letter prefix of
// pattern (widening to every child at a leading wildcard), then either
// reads the precomputed depth bitset directly — when nothing after i is
// constrained — or confirms each candidate letter against the remaining
// suffix, so the result is always exact.
func (ix *Index) PossibleLetters(pattern Pattern, i int) alphabet.CharSet {
	empty := alphabet.NewCharSet(ix.alphabet.Size())
	lt := ix.byLength[len(pattern)]
	if lt == nil || i < 0 || i >= len(pattern) {
		return empty
	}

	frontier := []*trieNode{lt.root}
	for j := 0; j < i; j++ {
		frontier = stepFrontier(frontier, pattern[j], ix.alphabet)
		if len(frontier) == 0 {
			return empty
		}
	}

	suffixConstrained := false
	for j := i + 1; j < len(pattern); j++ {
		if pattern[j] != Wildcard {
			suffixConstrained = true
			break
		}
	}

	result := alphabet.NewCharSet(ix.alphabet.Size())
	for _, node := range frontier {
		if node.children == nil {
			continue
		}
		if !suffixConstrained {
			result.Union(node.depthSet[0])
			continue
		}
		for idx, child := range node.children {
			if child == nil {
				continue
			}
			if matchesSuffix(child, pattern[i+1:], ix.alphabet) {
				result.Add(idx)
			}
		}
	}
	return result
}

func stepFrontier(frontier []*trieNode, letter rune, alpha *alphabet.Alphabet) []*trieNode {
	var next []*trieNode
	if letter == Wildcard {
		for _, node := range frontier {
			if node.children == nil {
				continue
			}
			for _, child := range node.children {
				if child != nil {
					next = append(next, child)
				}
			}
		}
		return next
	}
	idx, ok := alpha.IndexOf(letter)
	if !ok {
		return nil
	}
	for _, node := range frontier {
		if node.children == nil {
			continue
		}
		if child := node.children[idx]; child != nil {
			next = append(next, child)
		}
	}
	return next
}
