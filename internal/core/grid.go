package core

import (
	"errors"
	"fmt"
)

// ErrJagged reports a source matrix whose columns differ in length.
var ErrJagged = errors.New("matrix columns have unequal lengths")

// ErrEmpty reports a matrix or dimension with no cells.
var ErrEmpty = errors.New("matrix has no cells")

// Board stores a 2D grid of boolean cells in row-major order.
//
// Column-major matrices ([x][y]) are the exchange format with the seed codec,
// so BoardFromColumns and Columns convert to and from that shape.
type Board struct {
	W, H int
	data []bool
}

// NewBoard allocates an all-dead board with the given dimensions.
func NewBoard(w, h int) (*Board, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("board %dx%d: %w", w, h, ErrEmpty)
	}
	return &Board{W: w, H: h, data: make([]bool, w*h)}, nil
}

// BoardFromColumns copies a column-major matrix (matrix[x][y]) into a Board.
func BoardFromColumns(matrix [][]bool) (*Board, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, ErrEmpty
	}
	w, h := len(matrix), len(matrix[0])
	b := &Board{W: w, H: h, data: make([]bool, w*h)}
	for x, col := range matrix {
		if len(col) != h {
			return nil, fmt.Errorf("column %d has %d cells, want %d: %w", x, len(col), h, ErrJagged)
		}
		for y, alive := range col {
			b.data[y*w+x] = alive
		}
	}
	return b, nil
}

// Size returns the board dimensions.
func (b *Board) Size() Size { return Size{W: b.W, H: b.H} }

// Cells exposes the backing slice in row-major order.
func (b *Board) Cells() []bool { return b.data }

func (b *Board) index(x, y int) int { return y*b.W + x }

// At reports whether the cell at (x, y) is alive.
func (b *Board) At(x, y int) bool { return b.data[b.index(x, y)] }

// Set writes the cell at (x, y).
func (b *Board) Set(x, y int, alive bool) { b.data[b.index(x, y)] = alive }

// Wrap applies toroidal wrapping to the provided coordinates.
func (b *Board) Wrap(x, y int) (int, int) {
	x = (x%b.W + b.W) % b.W
	y = (y%b.H + b.H) % b.H
	return x, y
}

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Population counts live cells.
func (b *Board) Population() int {
	n := 0
	for _, alive := range b.data {
		if alive {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	return &Board{W: b.W, H: b.H, data: append([]bool(nil), b.data...)}
}

// Equal reports whether both boards have the same size and cells.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.W != o.W || b.H != o.H {
		return false
	}
	for i, v := range b.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// Columns returns a column-major copy (matrix[x][y]).
func (b *Board) Columns() [][]bool {
	out := make([][]bool, b.W)
	for x := range out {
		col := make([]bool, b.H)
		for y := range col {
			col[y] = b.data[y*b.W+x]
		}
		out[x] = col
	}
	return out
}
