// Package seed loads and saves seed boards and converts between the on-disk
// orientation and the engine's column-major orientation.
//
// Files store the matrix rotated a quarter turn relative to memory: Load
// applies RotateLeft after decoding and Save applies RotateRight before
// encoding, so a board survives a save/load cycle unchanged.
package seed

import (
	"errors"
	"fmt"
)

// ErrJagged reports a matrix whose rows differ in length.
var ErrJagged = errors.New("seed rows have unequal lengths")

// RotateLeft returns m turned a quarter turn counter-clockwise:
// result[x][y] = m[y][lenX-1-x]. The dimensions are swapped.
func RotateLeft(m [][]bool) [][]bool {
	lenY := len(m)
	if lenY == 0 {
		return [][]bool{}
	}
	lenX := len(m[0])
	result := make([][]bool, lenX)
	for x := range result {
		row := make([]bool, lenY)
		for y := range row {
			row[y] = m[y][lenX-1-x]
		}
		result[x] = row
	}
	return result
}

// RotateRight returns m turned a quarter turn clockwise:
// result[x][y] = m[lenY-1-y][x]. The dimensions are swapped.
func RotateRight(m [][]bool) [][]bool {
	lenY := len(m)
	if lenY == 0 {
		return [][]bool{}
	}
	lenX := len(m[0])
	result := make([][]bool, lenX)
	for x := range result {
		row := make([]bool, lenY)
		for y := range row {
			row[y] = m[lenY-1-y][x]
		}
		result[x] = row
	}
	return result
}

// checkRectangular verifies every row of m has the length of the first.
func checkRectangular(m [][]bool) error {
	if len(m) == 0 {
		return nil
	}
	want := len(m[0])
	for i, row := range m {
		if len(row) != want {
			return fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), want, ErrJagged)
		}
	}
	return nil
}
