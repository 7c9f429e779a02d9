// Package ui provides the display frontends. Each frontend is a renderer for
// the render task, an input source for the input task, and owns the main
// goroutine through Run.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifeline/internal/control"
	"lifeline/internal/core"
	"lifeline/internal/pipeline"
	"lifeline/internal/render"
)

// Rows and columns the terminal frontend draws around the board: the border
// on each side, plus the status and help lines.
const (
	terminalChromeCols = 2
	terminalChromeRows = 4
)

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

const helpText = "S save · Q quit · N new board · L toggle edges · R restart"

// FitTerminal returns the largest board that fits a terminal of cols×rows
// characters, counting the border, status and help lines.
func FitTerminal(cols, rows int) (w, h int) {
	w = (cols - terminalChromeCols) / render.CellColumns
	h = rows - terminalChromeRows
	return max(w, 1), max(h, 1)
}

type (
	frameMsg string
	titleMsg string
	statsMsg pipeline.Stats
)

// Terminal draws boards with bubbletea and forwards typed keys.
type Terminal struct {
	keys    *control.KeyQueue
	program *tea.Program
}

// NewTerminal returns a terminal frontend. Extra options go to the
// underlying tea.Program.
func NewTerminal(opts ...tea.ProgramOption) *Terminal {
	t := &Terminal{keys: control.NewKeyQueue(16)}
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	t.program = tea.NewProgram(newTerminalModel(t.keys), opts...)
	return t
}

// Initialize implements the renderer contract. The terminal adapts to any
// board size, so there is nothing to prepare.
func (t *Terminal) Initialize(width, height int) error { return nil }

// Render queues b for display.
func (t *Terminal) Render(b *core.Board) { t.program.Send(frameMsg(render.Text(b))) }

// SetTitle updates the status line.
func (t *Terminal) SetTitle(title string) { t.program.Send(titleMsg(title)) }

// SetQueueStats updates the queue counters shown beside the status line.
func (t *Terminal) SetQueueStats(stats pipeline.Stats) { t.program.Send(statsMsg(stats)) }

// Next returns the next operator key.
func (t *Terminal) Next(ctx context.Context) (control.Key, error) { return t.keys.Next(ctx) }

// Run drives the terminal until ctx is done or the program exits.
func (t *Terminal) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, t.program.Quit)
	defer stop()
	_, err := t.program.Run()
	return err
}

type terminalModel struct {
	keys  *control.KeyQueue
	board string
	title string
	stats pipeline.Stats
}

func newTerminalModel(keys *control.KeyQueue) terminalModel {
	return terminalModel{keys: keys}
}

func (m terminalModel) Init() tea.Cmd { return nil }

func (m terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			// Quit through the bus so every task shuts down in order.
			m.keys.Push(control.KeyQ)
		case tea.KeyEsc:
			m.keys.Push(control.KeyEscape)
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.keys.Push(control.KeyFromRune(r))
			}
		}
	case frameMsg:
		m.board = string(msg)
	case titleMsg:
		m.title = string(msg)
	case statsMsg:
		m.stats = pipeline.Stats(msg)
	}
	return m, nil
}

func (m terminalModel) View() string {
	status := statusStyle.Render(m.title)
	if m.stats.Capacity > 0 {
		status = lipgloss.JoinHorizontal(lipgloss.Top, status, helpStyle.Render(" "+m.stats.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		boardStyle.Render(m.board),
		helpStyle.Render(helpText),
	)
}
