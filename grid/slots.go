package grid

import "github.com/aleris/xwords/wordindex"

// Direction is the orientation of a Slot.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Across {
		return "Across"
	}
	return "Down"
}

// Slot is a maximal run of non-Block cells of length >= 2, in one direction.
type Slot struct {
	ID     int
	Dir    Direction
	Row    int // starting row
	Col    int // starting column
	Length int

	cellIndices []int // row-major cell indices, in slot order
}

// Crossing records where one Across slot and one Down slot share a cell.
type Crossing struct {
	AcrossSlot   *Slot
	AcrossOffset int
	DownSlot     *Slot
	DownOffset   int
}

// Pattern reads s's current contents off g as a wordindex.Pattern: known
// letters where g has Fixed or Filled cells, Wildcard elsewhere.
func (s *Slot) Pattern(g *Grid) wordindex.Pattern {
	p := make(wordindex.Pattern, s.Length)
	for i, idx := range s.cellIndices {
		c := g.cells[idx]
		if c.Kind == Fixed || c.Kind == Filled {
			p[i] = c.Letter
		} else {
			p[i] = wordindex.Wildcard
		}
	}
	return p
}

// CellAt returns the row, col of the i-th cell of s.
func (s *Slot) CellAt(i int) (row, col int) {
	if s.Dir == Across {
		return s.Row, s.Col + i
	}
	return s.Row + i, s.Col
}

func (g *Grid) computeSlots() {
	var slots []*Slot
	nextID := 0

	// Across: scan each row for maximal non-Block runs.
	acrossByStart := make(map[[2]int]*Slot)
	for row := 0; row < g.height; row++ {
		col := 0
		for col < g.width {
			if g.At(row, col).Kind == Block {
				col++
				continue
			}
			start := col
			for col < g.width && g.At(row, col).Kind != Block {
				col++
			}
			length := col - start
			if length >= 2 {
				s := &Slot{ID: nextID, Dir: Across, Row: row, Col: start, Length: length}
				nextID++
				for i := 0; i < length; i++ {
					s.cellIndices = append(s.cellIndices, g.cellIndex(row, start+i))
				}
				slots = append(slots, s)
				acrossByStart[[2]int{row, start}] = s
			}
		}
	}

	// Down: scan each column for maximal non-Block runs.
	downByStart := make(map[[2]int]*Slot)
	for col := 0; col < g.width; col++ {
		row := 0
		for row < g.height {
			if g.At(row, col).Kind == Block {
				row++
				continue
			}
			start := row
			for row < g.height && g.At(row, col).Kind != Block {
				row++
			}
			length := row - start
			if length >= 2 {
				s := &Slot{ID: nextID, Dir: Down, Row: start, Col: col, Length: length}
				nextID++
				for i := 0; i < length; i++ {
					s.cellIndices = append(s.cellIndices, g.cellIndex(start+i, col))
				}
				slots = append(slots, s)
				downByStart[[2]int{start, col}] = s
			}
		}
	}

	// Crossings: for every cell, find the Across and Down slot passing
	// through it (if both exist) by walking back to each run's start.
	crossings := make(map[int]Crossing)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if g.At(row, col).Kind == Block {
				continue
			}
			acrossStart := col
			for acrossStart > 0 && g.At(row, acrossStart-1).Kind != Block {
				acrossStart--
			}
			downStart := row
			for downStart > 0 && g.At(downStart-1, col).Kind != Block {
				downStart--
			}
			across, hasAcross := acrossByStart[[2]int{row, acrossStart}]
			down, hasDown := downByStart[[2]int{downStart, col}]
			if !hasAcross || !hasDown {
				continue
			}
			crossings[g.cellIndex(row, col)] = Crossing{
				AcrossSlot:   across,
				AcrossOffset: col - across.Col,
				DownSlot:     down,
				DownOffset:   row - down.Row,
			}
		}
	}

	g.slots = slots
	g.crossings = crossings
}
