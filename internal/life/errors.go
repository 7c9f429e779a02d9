package life

import "fmt"

// InvalidDimensionsError reports a board that cannot back an engine: a
// non-positive width or height, or a jagged source matrix.
type InvalidDimensionsError struct {
	Width  int
	Height int
	Reason string
	Err    error
}

func (e *InvalidDimensionsError) Error() string {
	msg := fmt.Sprintf("invalid board dimensions %dx%d: %s", e.Width, e.Height, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidDimensionsError) Unwrap() error { return e.Err }
