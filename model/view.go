package model

import "strings"

// View is a read-only snapshot of one generation. It does not change when the
// engine that produced it is mutated afterwards.
type View struct {
	grid       *Grid
	generation int
}

// Rows returns the number of rows in the snapshot
func (v *View) Rows() int { return v.grid.rows }

// Columns returns the number of columns in the snapshot
func (v *View) Columns() int { return v.grid.columns }

// Generation returns the generation the snapshot was taken at
func (v *View) Generation() int { return v.generation }

// Cell returns the state at (row, col), or ErrOutOfBounds
func (v *View) Cell(row, col int) (CellState, error) {
	if !v.grid.InBounds(row, col) {
		return Dead, outOfBounds("View.Cell", row, col, v.grid.rows, v.grid.columns)
	}
	return v.grid.cells[row][col], nil
}

// Alive reports whether (row, col) is alive; coordinates outside the grid read as dead
func (v *View) Alive(row, col int) bool {
	return v.grid.Get(row, col) == Alive
}

// Population returns the number of live cells
func (v *View) Population() int { return v.grid.CountLivingCells() }

// Equal reports whether two snapshots have the same dimensions and cells
func (v *View) Equal(o *View) bool {
	return v.grid.Hash() == o.grid.Hash()
}

// String renders the snapshot one row per line, 'O' for alive and '.' for dead
func (v *View) String() string {
	var sb strings.Builder
	sb.Grow(v.grid.rows * (v.grid.columns + 1))
	for y := range v.grid.rows {
		for x := range v.grid.columns {
			if v.grid.cells[y][x] == Alive {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
