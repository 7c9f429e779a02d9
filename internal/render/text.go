package render

import (
	"strings"

	"lifeline/internal/core"
)

// Cell glyphs for text output. Each cell is two columns wide so the board
// keeps roughly square proportions in a terminal.
const (
	LiveCell    = "██"
	DeadCell    = "  "
	CellColumns = 2
)

// Text draws b as rows of cell glyphs separated by newlines.
func Text(b *core.Board) string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(b.H * (b.W*len(LiveCell) + 1))
	for y := 0; y < b.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.W; x++ {
			if b.At(x, y) {
				sb.WriteString(LiveCell)
			} else {
				sb.WriteString(DeadCell)
			}
		}
	}
	return sb.String()
}
