package wordindex

import (
	"bytes"
	"slices"
	"sort"
	"testing"
)

func matchWords(ix *Index, pattern string) []string {
	var got []string
	for w := range ix.Match(toPattern(pattern)) {
		got = append(got, w)
	}
	sort.Strings(got)
	return got
}

func toPattern(s string) Pattern {
	p := make(Pattern, len(s))
	for i, r := range []rune(s) {
		if r == '_' {
			p[i] = Wildcard
		} else {
			p[i] = r
		}
	}
	return p
}

func TestBuildIndex_DropsShortAndNonLetterWords(t *testing.T) {
	ix := BuildIndex([]string{"cat", "a", "it's", "dog"})

	if !ix.Exists("CAT") {
		t.Errorf("expected CAT to exist")
	}
	if ix.Exists("A") {
		t.Errorf("single-letter word should be dropped")
	}
	if ix.Exists("IT'S") {
		t.Errorf("word containing punctuation should be dropped")
	}
	if ix.Size() != 2 {
		t.Errorf("Size() = %d, want 2", ix.Size())
	}
}

func TestBuildIndex_FoldsCaseAndDeduplicates(t *testing.T) {
	ix := BuildIndex([]string{"Cat", "CAT", "cat"})
	if ix.Size() != 1 {
		t.Errorf("Size() = %d, want 1", ix.Size())
	}
	if !ix.Exists("cat") {
		t.Errorf("Exists should be case-insensitive")
	}
}

func TestIndex_Exists(t *testing.T) {
	ix := BuildIndex([]string{"cat", "cot", "cut", "dog"})

	tests := []struct {
		word string
		want bool
	}{
		{"CAT", true},
		{"cot", true},
		{"bat", false},
		{"c", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := ix.Exists(tt.word); got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestIndex_Match(t *testing.T) {
	ix := BuildIndex([]string{"cat", "cot", "cut", "dog"})

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"all wildcard", "___", []string{"CAT", "COT", "CUT", "DOG"}},
		{"fixed prefix", "C__", []string{"CAT", "COT", "CUT"}},
		{"fixed middle", "_O_", []string{"COT", "DOG"}},
		{"fully fixed, present", "CAT", []string{"CAT"}},
		{"fully fixed, absent", "BAT", nil},
		{"wrong length", "____", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchWords(ix, tt.pattern)
			want := append([]string(nil), tt.want...)
			sort.Strings(want)
			if !slices.Equal(got, want) {
				t.Errorf("Match(%q) = %v, want %v", tt.pattern, got, want)
			}
		})
	}
}

func TestIndex_PossibleLetters(t *testing.T) {
	ix := BuildIndex([]string{"cat", "cot", "cut", "dog"})
	alpha := ix.Alphabet()

	tests := []struct {
		name    string
		pattern string
		index   int
		want    []rune
	}{
		{"prefix only, position 1", "C__", 1, []rune{'A', 'O', 'U'}},
		{"known letter after queried offset narrows it", "__T", 0, []rune{'C'}},
		{"middle wildcard widened then narrowed by suffix", "__G", 0, []rune{'D'}},
		{"no matches", "X__", 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := ix.PossibleLetters(toPattern(tt.pattern), tt.index)
			got := cs.Letters(alpha)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			want := append([]rune(nil), tt.want...)
			sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
			if !slices.Equal(got, want) {
				t.Errorf("PossibleLetters(%q, %d) = %v, want %v", tt.pattern, tt.index, got, want)
			}
		})
	}
}

func TestIndex_PossibleLetters_MatchesWholeWordSemantics(t *testing.T) {
	// PossibleLetters(pattern, i) must equal {w[i] | w matches pattern}.
	ix := BuildIndex([]string{"siam", "slam", "scam", "sham", "stem"})
	pattern := toPattern("S_AM")

	var want []rune
	for w := range ix.Match(pattern) {
		want = append(want, []rune(w)[1])
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	got := ix.PossibleLetters(pattern, 1).Letters(ix.Alphabet())
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	if !slices.Equal(got, want) {
		t.Errorf("PossibleLetters = %v, want %v", got, want)
	}
}

func TestIndex_CacheRoundTrip(t *testing.T) {
	ix := BuildIndex([]string{"cat", "cot", "cut", "dog", "siam", "ryal"})

	var buf bytes.Buffer
	if err := Save(ix, &buf); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, w := range []string{"CAT", "DOG", "SIAM", "NOPE"} {
		if loaded.Exists(w) != ix.Exists(w) {
			t.Errorf("Exists(%q) after round trip = %v, want %v", w, loaded.Exists(w), ix.Exists(w))
		}
	}

	for _, pattern := range []string{"C__", "__T"} {
		if !slices.Equal(matchWords(loaded, pattern), matchWords(ix, pattern)) {
			t.Errorf("Match(%q) differs after round trip", pattern)
		}
	}
}
