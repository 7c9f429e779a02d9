package life

import (
	"lifeline/internal/core"
)

// bailThreshold is the neighbour count at which counting stops. No rule
// outcome distinguishes four neighbours from more.
const bailThreshold = 4

// Engine implements Conway's Game of Life over a fixed-size board.
//
// Boards handed out by Step, Board and Seed are never written again by the
// engine; each Step allocates a fresh board. Engine is not safe for
// concurrent use.
type Engine struct {
	seed       *core.Board
	cur        *core.Board
	generation int
	wrap       bool

	mutation MutationConfig
	rng      *core.RNG
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithEdgeWrap selects toroidal (true) or bounded (false) neighbour lookup.
func WithEdgeWrap(wrap bool) Option {
	return func(e *Engine) { e.wrap = wrap }
}

// WithMutation enables the stochastic birth-rule perturbation.
func WithMutation(cfg MutationConfig) Option {
	return func(e *Engine) { e.mutation = cfg.normalized() }
}

// WithRandSeed fixes the seed of the engine's internal RNG.
func WithRandSeed(seed int64) Option {
	return func(e *Engine) { e.rng = core.NewRNG(seed) }
}

// New returns an engine whose seed and working board are copies of seed.
func New(seed *core.Board, opts ...Option) (*Engine, error) {
	if seed == nil {
		return nil, &InvalidDimensionsError{Reason: "nil seed"}
	}
	if seed.W <= 0 || seed.H <= 0 || len(seed.Cells()) != seed.W*seed.H {
		return nil, &InvalidDimensionsError{Width: seed.W, Height: seed.H, Reason: "non-positive dimensions"}
	}
	e := &Engine{seed: seed.Clone()}
	e.cur = e.seed
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = core.NewRNG(core.TimeSeed())
	}
	return e, nil
}

// FromColumns builds an engine from a column-major matrix (matrix[x][y]).
func FromColumns(matrix [][]bool, opts ...Option) (*Engine, error) {
	b, err := core.BoardFromColumns(matrix)
	if err != nil {
		w, h := len(matrix), 0
		if w > 0 {
			h = len(matrix[0])
		}
		return nil, &InvalidDimensionsError{Width: w, Height: h, Reason: "invalid seed matrix", Err: err}
	}
	return New(b, opts...)
}

// NewRandom returns an engine seeded with a random w*h board drawn from seed.
func NewRandom(w, h int, seed int64, opts ...Option) (*Engine, error) {
	b, err := core.NewBoard(w, h)
	if err != nil {
		return nil, &InvalidDimensionsError{Width: w, Height: h, Reason: "non-positive dimensions", Err: err}
	}
	core.FillBinary(core.NewRNG(seed).Source(), b.Cells())
	return New(b, opts...)
}

// Size returns the board dimensions.
func (e *Engine) Size() core.Size { return e.cur.Size() }

// Board returns the current generation.
func (e *Engine) Board() *core.Board { return e.cur }

// Seed returns the initial board retained for resets.
func (e *Engine) Seed() *core.Board { return e.seed }

// Generation returns the number of steps since the seed or the last reset.
func (e *Engine) Generation() int { return e.generation }

// EdgeWrap reports whether neighbour lookup is toroidal.
func (e *Engine) EdgeWrap() bool { return e.wrap }

// SetEdgeWrap changes the neighbour topology from the next Step on.
func (e *Engine) SetEdgeWrap(wrap bool) { e.wrap = wrap }

// ToggleEdgeWrap flips the neighbour topology and returns the new mode.
func (e *Engine) ToggleEdgeWrap() bool {
	e.wrap = !e.wrap
	return e.wrap
}

// Mutation returns the active mutation settings.
func (e *Engine) Mutation() MutationConfig { return e.mutation }

// Reset restores the working board from the seed and zeroes the generation.
func (e *Engine) Reset() {
	e.cur = e.seed
	e.generation = 0
}

// Step computes and installs the next generation and returns it.
func (e *Engine) Step() *core.Board {
	cur := e.cur
	w, h := cur.W, cur.H
	birth := e.birthThreshold(e.generation + 1)

	next, _ := core.NewBoard(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := e.neighbors(x, y, bailThreshold)
			next.Set(x, y, nextState(cur.At(x, y), n, birth))
		}
	}
	e.cur = next
	e.generation++
	return next
}

func nextState(alive bool, neighbors, birth int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == birth
}

// neighbors counts live cells around (x, y). When limit > 0 counting stops
// once the count reaches limit, so the result is only exact below it.
func (e *Engine) neighbors(x, y, limit int) int {
	b := e.cur
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if e.wrap {
				nx, ny = b.Wrap(nx, ny)
			} else if !b.InBounds(nx, ny) {
				continue
			}
			if !b.At(nx, ny) {
				continue
			}
			n++
			if n == limit {
				return n
			}
		}
	}
	return n
}
