//go:build ebiten

package ui

import (
	"context"
	"errors"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"lifeline/internal/control"
	"lifeline/internal/core"
	"lifeline/internal/render"
)

const statusBarHeight = 18

var windowKeys = map[ebiten.Key]control.Key{
	ebiten.KeyS:      control.KeyS,
	ebiten.KeyQ:      control.KeyQ,
	ebiten.KeyN:      control.KeyN,
	ebiten.KeyL:      control.KeyL,
	ebiten.KeyR:      control.KeyR,
	ebiten.KeyEscape: control.KeyEscape,
}

// Window adapts the simulation pipeline to the ebiten.Game interface.
type Window struct {
	keys  *control.KeyQueue
	scale int
	ctx   context.Context

	mu      sync.Mutex
	w, h    int
	frame   *core.Board
	title   string
	shown   string
	painter *render.GridPainter

	onColor  color.Color
	offColor color.Color
}

// NewWindow constructs a window frontend drawing each cell as scale×scale
// pixels.
func NewWindow(scale int) *Window {
	if scale <= 0 {
		scale = 1
	}
	return &Window{
		keys:     control.NewKeyQueue(16),
		scale:    scale,
		ctx:      context.Background(),
		onColor:  color.White,
		offColor: color.Black,
	}
}

// Initialize sizes the window to the board.
func (g *Window) Initialize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("window: board has no cells")
	}
	g.mu.Lock()
	g.w, g.h = width, height
	g.mu.Unlock()
	ebiten.SetWindowSize(width*g.scale, height*g.scale+statusBarHeight)
	return nil
}

// Render stores b for the next Draw.
func (g *Window) Render(b *core.Board) {
	g.mu.Lock()
	g.frame = b
	g.mu.Unlock()
}

// SetTitle stores the status line for the next Update.
func (g *Window) SetTitle(title string) {
	g.mu.Lock()
	g.title = title
	g.mu.Unlock()
}

// Next returns the next operator key.
func (g *Window) Next(ctx context.Context) (control.Key, error) { return g.keys.Next(ctx) }

// Run opens the window and blocks until ctx is done or the window closes.
func (g *Window) Run(ctx context.Context) error {
	g.ctx = ctx
	ebiten.SetWindowTitle("lifeline")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update forwards key presses and ends the game once the session stops.
func (g *Window) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	for k, key := range windowKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.keys.Push(key)
		}
	}
	g.mu.Lock()
	title := g.title
	g.mu.Unlock()
	if title != g.shown {
		ebiten.SetWindowTitle(title)
		g.shown = title
	}
	return nil
}

// Draw renders the latest frame and the status line.
func (g *Window) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	frame := g.frame
	g.mu.Unlock()
	if frame == nil {
		return
	}
	if pw, ph := g.painterSize(); pw != frame.W || ph != frame.H {
		g.painter = render.NewGridPainter(frame.W, frame.H)
	}
	g.painter.Blit(screen, frame.Cells(), g.onColor, g.offColor, g.scale)
	text.Draw(screen, g.shown, basicfont.Face7x13, 4, frame.H*g.scale+13, color.RGBA{R: 200, G: 200, B: 210, A: 255})
}

func (g *Window) painterSize() (int, int) {
	if g.painter == nil {
		return 0, 0
	}
	return g.painter.Size()
}

// Layout returns the logical screen size.
func (g *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return max(g.w, 1) * g.scale, max(g.h, 1)*g.scale + statusBarHeight
}
