// Package across renders a filled grid.Grid as an Across Puzzle V2 text
// container, the plain-text exchange format this lineage's CLI and Cloud
// Function both expose as one of their two output formats.
package across

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aleris/xwords/grid"
)

// Render emits the Across Puzzle V2 container for g. g must have no
// Unknown cells; a grid still mid-fill returns a StructuralError, since the
// format has no way to represent an undecided cell.
func Render(g *grid.Grid, title, author, copyright string) (string, error) {
	if g.HasUnknown() {
		return "", &grid.StructuralError{Msg: "across: grid still has Unknown cells"}
	}

	acrossSlots, downSlots := readingOrder(g)

	var b strings.Builder
	b.WriteString("<ACROSS PUZZLE V2>\n")
	b.WriteString("<TITLE>\n")
	b.WriteString(title)
	b.WriteString("\n<AUTHOR>\n")
	b.WriteString(author)
	b.WriteString("\n<COPYRIGHT>\n")
	b.WriteString(copyright)
	b.WriteString("\n<SIZE>\n")
	b.WriteString(sizeLine(g))
	b.WriteString("\n<GRID>\n")
	b.WriteString(grid.RenderGrid(g))
	b.WriteString("\n<ACROSS>\n")
	writeWords(&b, g, acrossSlots)
	b.WriteString("<DOWN>\n")
	writeWords(&b, g, downSlots)

	return strings.TrimSuffix(b.String(), "\n"), nil
}

func sizeLine(g *grid.Grid) string {
	return fmt.Sprintf("%dx%d", g.Width(), g.Height())
}

// readingOrder returns Across and Down slots sorted by the reading order of
// their starting cell: row ascending, then column ascending.
func readingOrder(g *grid.Grid) (acrossSlots, downSlots []*grid.Slot) {
	for _, s := range g.Slots() {
		if s.Dir == grid.Across {
			acrossSlots = append(acrossSlots, s)
		} else {
			downSlots = append(downSlots, s)
		}
	}
	byReadingOrder := func(slots []*grid.Slot) func(i, j int) bool {
		return func(i, j int) bool {
			if slots[i].Row != slots[j].Row {
				return slots[i].Row < slots[j].Row
			}
			return slots[i].Col < slots[j].Col
		}
	}
	sort.SliceStable(acrossSlots, byReadingOrder(acrossSlots))
	sort.SliceStable(downSlots, byReadingOrder(downSlots))
	return acrossSlots, downSlots
}

func writeWords(b *strings.Builder, g *grid.Grid, slots []*grid.Slot) {
	for _, s := range slots {
		b.WriteString(s.Pattern(g).String())
		b.WriteByte('\n')
	}
}
