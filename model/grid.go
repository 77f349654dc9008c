package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifegrid/rules"
)

// Grid is a dense row-major matrix of cell states
type Grid struct {
	rows    int
	columns int
	cells   [][]CellState
}

// NewGrid creates a new grid with the specified dimensions, every cell Dead
func NewGrid(rows, columns int) *Grid {
	g := &Grid{}
	g.Reset(rows, columns)
	return g
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns
func (g *Grid) Columns() int {
	return g.columns
}

// InBounds reports whether (row, col) addresses a cell of the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.columns
}

// Reset reallocates the grid to new dimensions, reusing row storage where it fits
func (g *Grid) Reset(rows, columns int) {
	g.rows = rows
	g.columns = columns

	if cap(g.cells) < rows {
		g.cells = make([][]CellState, rows)
	}
	g.cells = g.cells[:rows]
	for i := range g.cells {
		if cap(g.cells[i]) < columns {
			g.cells[i] = make([]CellState, columns)
			continue
		}
		g.cells[i] = g.cells[i][:columns]
		clear(g.cells[i])
	}
}

// Clear sets every cell Dead
func (g *Grid) Clear() {
	for y := range g.rows {
		clear(g.cells[y])
	}
}

// Set sets a cell's state, ignoring coordinates outside the grid
func (g *Grid) Set(row, col int, state CellState) {
	if g.InBounds(row, col) {
		g.cells[row][col] = state
	}
}

// Get returns the state of a cell, Dead for coordinates outside the grid
func (g *Grid) Get(row, col int) CellState {
	if !g.InBounds(row, col) {
		return Dead
	}
	return g.cells[row][col]
}

// CountNeighbors counts living cells in the Moore neighborhood of (row, col).
// Positions beyond the edge count as dead; there is no wraparound.
func (g *Grid) CountNeighbors(row, col int) int {
	count := 0

	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.columns-1, col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue
			}
			if g.cells[r][c] == Alive {
				count++
			}
		}
	}

	return count
}

// NextGeneration computes the following generation into a fresh grid, splitting
// rows into bands across workers. g is only read, so every neighbor count sees
// the current generation. workers <= 0 means runtime.NumCPU().
func (g *Grid) NextGeneration(pool *GridPool, workers int) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.rows, g.columns)
	} else {
		next = NewGrid(g.rows, g.columns)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.rows + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := range g.columns {
					alive := rules.ApplyConwayRules(g.CountNeighbors(y, x), g.cells[y][x] == Alive)
					next.cells[y][x] = stateOf(alive)
				}
			}
			return nil
		})
	}

	// band workers never fail
	_ = eg.Wait()

	return next
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.rows {
		for x := range g.columns {
			if g.cells[y][x] == Alive {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 digest of the grid's dimensions and cells
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.rows, g.columns)
	for y := range g.rows {
		for x := range g.columns {
			h.Write([]byte{byte(g.cells[y][x])})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Randomize sets each cell Alive with probability density
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for y := range g.rows {
		for x := range g.columns {
			g.cells[y][x] = stateOf(rng.Float64() < density)
		}
	}
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.rows, g.columns)
	for y := range g.rows {
		copy(c.cells[y], g.cells[y])
	}
	return c
}
