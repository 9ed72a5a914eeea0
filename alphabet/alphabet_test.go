package alphabet

import "testing"

func TestNew_DenseAndSorted(t *testing.T) {
	a := New([]string{"CAB", "BAD"})

	if a.Size() != 4 {
		t.Fatalf("size = %d, want 4", a.Size())
	}
	for i := 0; i < a.Size()-1; i++ {
		if a.Letter(i) >= a.Letter(i+1) {
			t.Fatalf("letters not sorted: %c >= %c", a.Letter(i), a.Letter(i+1))
		}
	}
}

func TestAlphabet_IndexOf(t *testing.T) {
	a := New([]string{"CAT", "DOG"})

	tests := []struct {
		name string
		r    rune
		want bool
	}{
		{"member", 'C', true},
		{"also member", 'G', true},
		{"not a member", 'Z', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := a.IndexOf(tt.r)
			if ok != tt.want {
				t.Errorf("IndexOf(%c) ok = %v, want %v", tt.r, ok, tt.want)
			}
		})
	}
}

func TestFold_Uppercases(t *testing.T) {
	if got := Fold("fluky"); got != "FLUKY" {
		t.Errorf("Fold() = %q, want FLUKY", got)
	}
}

func TestCharSet_AddContains(t *testing.T) {
	cs := NewCharSet(8)
	cs.Add(3)
	cs.Add(5)

	for i := 0; i < 8; i++ {
		want := i == 3 || i == 5
		if got := cs.Contains(i); got != want {
			t.Errorf("Contains(%d) = %v, want %v", i, got, want)
		}
	}
	if cs.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cs.Count())
	}
}

func TestCharSet_Union(t *testing.T) {
	a := NewCharSet(130)
	a.Add(0)
	a.Add(129)

	b := NewCharSet(130)
	b.Add(64)

	a.Union(b)

	if !a.Contains(0) || !a.Contains(64) || !a.Contains(129) {
		t.Fatalf("union missing a member")
	}
	if a.Count() != 3 {
		t.Errorf("Count() = %d, want 3", a.Count())
	}
}

func TestCharSet_Empty(t *testing.T) {
	cs := NewCharSet(16)
	if !cs.Empty() {
		t.Fatalf("fresh set should be empty")
	}
	cs.Add(9)
	if cs.Empty() {
		t.Fatalf("set with a member should not be empty")
	}
}

func TestCharSet_Letters(t *testing.T) {
	a := New([]string{"BED"})
	cs := NewCharSet(a.Size())
	idx, _ := a.IndexOf('B')
	cs.Add(idx)

	letters := cs.Letters(a)
	if len(letters) != 1 || letters[0] != 'B' {
		t.Errorf("Letters() = %v, want [B]", letters)
	}
}
