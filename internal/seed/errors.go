package seed

import "fmt"

// LoadError reports a seed file that could not be turned into a board:
// missing or unreadable file, malformed encoding, or a non-rectangular matrix.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load seed %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed attempt to persist a board.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save seed %q: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
