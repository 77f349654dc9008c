package model

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultRows            = 20
	DefaultColumns         = 20
	DefaultLiveProbability = 0.3

	// historySize is how many recent generation hashes are kept for stagnation checks
	historySize = 5
)

// Engine owns the cell matrix and serializes every operation behind one mutex,
// so a step never observes a half-applied mutation.
type Engine struct {
	mu         sync.Mutex
	grid       *Grid
	generation int
	history    []string

	rng     *rand.Rand
	pool    *GridPool
	workers int
}

// Option configures an Engine
type Option func(*Engine)

// WithRand sets the random source used by Randomize
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds a PCG random source for Randomize
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, 0)))
}

// WithGridPool recycles retired generations through pool
func WithGridPool(pool *GridPool) Option {
	return func(e *Engine) { e.pool = pool }
}

// WithWorkers sets how many row bands a step is split into; <= 0 uses every CPU
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// NewEngine creates an engine with a rows x columns grid of dead cells
func NewEngine(rows, columns int, opts ...Option) (*Engine, error) {
	if err := validateDimensions("NewEngine", rows, columns); err != nil {
		return nil, err
	}

	e := &Engine{grid: NewGrid(rows, columns)}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return e, nil
}

// NewDefaultEngine creates an engine with the default 20x20 grid
func NewDefaultEngine(opts ...Option) *Engine {
	e, _ := NewEngine(DefaultRows, DefaultColumns, opts...)
	return e
}

func validateDimensions(op string, rows, columns int) error {
	if rows <= 0 || columns <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "[%s] dimensions must be positive, got %dx%d", op, rows, columns)
	}
	return nil
}

// Dimensions returns the current rows and columns
func (e *Engine) Dimensions() (rows, columns int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.rows, e.grid.columns
}

// Cell returns the state at (row, col), or ErrOutOfBounds
func (e *Engine) Cell(row, col int) (CellState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.grid.InBounds(row, col) {
		return Dead, outOfBounds("Cell", row, col, e.grid.rows, e.grid.columns)
	}
	return e.grid.cells[row][col], nil
}

// Grid returns a read-only snapshot of the current generation
func (e *Engine) Grid() *View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() *View {
	return &View{grid: e.grid.Clone(), generation: e.generation}
}

// Generation returns how many steps have been applied since the engine was created
func (e *Engine) Generation() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// Population returns the number of live cells
func (e *Engine) Population() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.CountLivingCells()
}

// ToggleCell flips (row, col) between Dead and Alive
func (e *Engine) ToggleCell(row, col int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.grid.InBounds(row, col) {
		return outOfBounds("ToggleCell", row, col, e.grid.rows, e.grid.columns)
	}
	e.grid.cells[row][col] = e.grid.cells[row][col].Toggle()
	e.history = nil
	return nil
}

// Resize replaces the grid with a rows x columns grid of dead cells
func (e *Engine) Resize(rows, columns int) error {
	if err := validateDimensions("Resize", rows, columns); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	GridToPool(e.grid, e.pool)
	e.grid = NewGrid(rows, columns)
	e.history = nil
	return nil
}

// Randomize sets each cell Alive independently with probability p
func (e *Engine) Randomize(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return errors.Wrapf(ErrInvalidArgument, "[Randomize] probability must be within [0, 1], got %v", p)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.grid.Randomize(e.rng, p)
	e.history = nil
	return nil
}

// Reset sets every cell Dead, keeping the dimensions
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.grid.Clear()
	e.history = nil
}

// Place sets the live cells of pattern with its top-left corner at (row, col).
// Nothing is written unless the whole pattern fits; an empty pattern is
// ErrInvalidArgument.
func (e *Engine) Place(pattern Pattern, row, col int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, c := pattern.Size()
	if r == 0 || c == 0 {
		return errors.Wrapf(ErrInvalidArgument, "[Place] pattern %q has no live cells", pattern.Name)
	}
	if !e.grid.InBounds(row, col) || !e.grid.InBounds(row+r-1, col+c-1) {
		return errors.Wrapf(ErrOutOfBounds, "[Place] %dx%d pattern at (%d, %d) outside %dx%d grid",
			r, c, row, col, e.grid.rows, e.grid.columns)
	}

	for _, cell := range pattern.Cells {
		e.grid.cells[row+cell[0]][col+cell[1]] = Alive
	}
	e.history = nil
	return nil
}

// Step computes the next generation from the current one, installs it and
// returns a snapshot of it.
func (e *Engine) Step() *View {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = append(e.history, e.grid.Hash())
	if len(e.history) > historySize {
		e.history = e.history[1:]
	}

	next := e.grid.NextGeneration(e.pool, e.workers)
	GridToPool(e.grid, e.pool)
	e.grid = next
	e.generation++

	return e.snapshot()
}

// IsStagnant reports whether the current generation repeats one of the last
// three, i.e. the grid is static or cycling with period 2 or 3.
func (e *Engine) IsStagnant() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.history) == 0 {
		return false
	}

	current := e.grid.Hash()
	for i := len(e.history) - 1; i >= max(0, len(e.history)-3); i-- {
		if e.history[i] == current {
			return true
		}
	}
	return false
}
