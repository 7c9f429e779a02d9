package app

import (
	"fmt"

	"lifeline/internal/core"
	"lifeline/internal/pipeline"
)

// TitleFormat is the status line published once per render iteration:
// processed generation, then rendered generation.
const TitleFormat = "Conway's Game of Life - Processed Generation %d - Rendering Generation %d"

// Renderer draws boards. Initialize is called once with the board size
// before the first Render; Render is called from the render task only.
type Renderer interface {
	Initialize(width, height int) error
	Render(b *core.Board)
}

// TitleSetter is implemented by renderers that can show the status line.
type TitleSetter interface {
	SetTitle(title string)
}

// StatsSetter is implemented by renderers that show the frame queue counters
// next to the status line.
type StatsSetter interface {
	SetQueueStats(stats pipeline.Stats)
}

// FormatTitle renders the status line for the given counters.
func FormatTitle(processed, rendered int) string {
	return fmt.Sprintf(TitleFormat, processed, rendered)
}
