package core

import "fmt"

// Size describes the dimensions of a board.
type Size struct {
	W int
	H int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }
