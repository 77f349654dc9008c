package model

// Pattern is a set of live cells given as (row, col) offsets from a top-left corner
type Pattern struct {
	Name  string
	Cells [][2]int
}

// Size returns the bounding box of the pattern
func (p Pattern) Size() (rows, columns int) {
	for _, c := range p.Cells {
		rows = max(rows, c[0]+1)
		columns = max(columns, c[1]+1)
	}
	return
}

var (
	// Glider travels one cell diagonally every four generations
	Glider = Pattern{
		Name:  "glider",
		Cells: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}

	// Blinker is a horizontal period-2 oscillator
	Blinker = Pattern{
		Name:  "blinker",
		Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}},
	}

	// Block is a 2x2 still life
	Block = Pattern{
		Name:  "block",
		Cells: [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}
)

// Patterns indexes the built-in patterns by name
var Patterns = map[string]Pattern{
	Glider.Name:  Glider,
	Blinker.Name: Blinker,
	Block.Name:   Block,
}
