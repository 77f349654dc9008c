package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grids between generations
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves a grid from the pool, resized and cleared
func (p *GridPool) Get(rows, columns int) *Grid {
	g := p.pool.Get().(*Grid)
	g.Reset(rows, columns)
	return g
}

// Put returns a grid to the pool
func (p *GridPool) Put(g *Grid) {
	p.pool.Put(g)
}
