//go:build !ebiten

package ui

import (
	"context"
	"errors"

	"lifeline/internal/control"
	"lifeline/internal/core"
)

// ErrNoWindow is returned by the window frontend in builds without the
// ebiten tag.
var ErrNoWindow = errors.New("the window frontend requires building with the 'ebiten' tag")

// Window is a placeholder that satisfies the API expected by the GUI build.
type Window struct{}

// NewWindow returns a placeholder window.
func NewWindow(int) *Window { return &Window{} }

// Initialize always reports that the GUI build tag is missing.
func (g *Window) Initialize(int, int) error { return ErrNoWindow }

// Render is a no-op placeholder.
func (g *Window) Render(*core.Board) {}

// Next blocks until ctx is done.
func (g *Window) Next(ctx context.Context) (control.Key, error) {
	<-ctx.Done()
	return control.KeyNone, ctx.Err()
}

// Run always reports that the GUI build tag is missing.
func (g *Window) Run(context.Context) error { return ErrNoWindow }
