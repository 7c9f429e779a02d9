package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"lifeline/internal/control"
	"lifeline/internal/core"
	"lifeline/internal/life"
	"lifeline/internal/pipeline"
)

// Saver persists a board and returns where it went.
type Saver interface {
	Save(b *core.Board) (string, error)
}

// Options configures a Session.
type Options struct {
	QueueCapacity  int
	RenderInterval time.Duration
	MaxTPS         int
	Saver          Saver
	Logger         *slog.Logger
	// NewSeed supplies the random seed for NewBoard. Defaults to the clock.
	NewSeed func() int64
}

// Session is the state shared by the input, simulation and render tasks.
//
// The engine is guarded by mu, held for one Step or one command at a time.
// Frames taken from the queue are immutable and need no locking.
type Session struct {
	mu     sync.Mutex
	engine *life.Engine

	queue *pipeline.Queue
	bus   *control.Bus

	running   atomic.Bool
	renderGen atomic.Int64

	stopMu  sync.Mutex
	stopped bool
	cancel  context.CancelFunc

	// renderMu orders a render of a dequeued frame against board resets.
	renderMu sync.Mutex

	renderInterval time.Duration
	maxTPS         int
	saver          Saver
	log            *slog.Logger
	newSeed        func() int64
}

// NewSession wraps engine and binds the five operator commands.
func NewSession(engine *life.Engine, opts Options) (*Session, error) {
	if engine == nil {
		return nil, fmt.Errorf("new session: nil engine")
	}
	if opts.RenderInterval <= 0 {
		opts.RenderInterval = 50 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.NewSeed == nil {
		opts.NewSeed = core.TimeSeed
	}
	s := &Session{
		engine:         engine,
		queue:          pipeline.New(opts.QueueCapacity),
		bus:            control.NewBus(),
		renderInterval: opts.RenderInterval,
		maxTPS:         opts.MaxTPS,
		saver:          opts.Saver,
		log:            opts.Logger,
		newSeed:        opts.NewSeed,
	}
	handlers := map[control.Command]control.Handler{
		control.Save:           s.save,
		control.Quit:           s.Stop,
		control.NewBoard:       s.newBoard,
		control.ToggleEdgeWrap: s.toggleEdgeWrap,
		control.Restart:        s.restart,
	}
	for _, cmd := range control.Commands() {
		if err := s.bus.Bind(cmd, handlers[cmd]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Bus returns the command bus, for frontends that dispatch directly.
func (s *Session) Bus() *control.Bus { return s.bus }

// Queue returns the frame queue.
func (s *Session) Queue() *pipeline.Queue { return s.queue }

// Running reports whether the tasks should keep looping.
func (s *Session) Running() bool { return s.running.Load() }

// Stop clears the running flag and wakes any blocked task. A Stop that
// arrives before Run makes Run return without starting the tasks.
func (s *Session) Stop() {
	s.stopMu.Lock()
	s.stopped = true
	s.running.Store(false)
	cancel := s.cancel
	s.stopMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Generation returns the processed generation of the current engine.
func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Generation()
}

// RenderGeneration returns how many frames were rendered since the current
// board started or was restarted.
func (s *Session) RenderGeneration() int { return int(s.renderGen.Load()) }

// EdgeWrap reports the edge mode of the current engine.
func (s *Session) EdgeWrap() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.EdgeWrap()
}

// Board returns the current board of the current engine.
func (s *Session) Board() *core.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Board()
}

// Title formats the status line from the current counters.
func (s *Session) Title() string {
	return FormatTitle(s.Generation(), s.RenderGeneration())
}

// stepOnce advances the engine and enqueues the result unless the queue is
// full. It reports whether a step happened.
func (s *Session) stepOnce() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Full() {
		return false
	}
	b := s.engine.Step()
	s.queue.TryEnqueue(pipeline.Frame{Board: b, Generation: s.engine.Generation()})
	return true
}

func (s *Session) save() {
	if s.saver == nil {
		s.log.Warn("save requested but no store is configured")
		return
	}
	b := s.Board()
	path, err := s.saver.Save(b)
	if err != nil {
		s.log.Warn("save failed", "err", err)
		return
	}
	s.log.Info("board saved", "path", path, "population", b.Population())
}

func (s *Session) newBoard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := s.engine.Size()
	seed := s.newSeed()
	e, err := life.NewRandom(size.W, size.H, seed,
		life.WithEdgeWrap(s.engine.EdgeWrap()),
		life.WithMutation(s.engine.Mutation()),
	)
	if err != nil {
		s.log.Error("new board failed", "err", err)
		return
	}
	s.engine = e
	dropped := s.resetFrames()
	s.log.Info("new board", "size", size.String(), "seed", seed, "stale_frames", dropped)
}

func (s *Session) toggleEdgeWrap() {
	s.mu.Lock()
	wrap := s.engine.ToggleEdgeWrap()
	s.mu.Unlock()
	s.log.Info("edge wrap toggled", "edge_wrap", wrap)
}

func (s *Session) restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
	dropped := s.resetFrames()
	s.log.Info("board restarted", "stale_frames", dropped)
}

// resetFrames discards queued frames of the previous board and zeroes the
// render counter. It waits for a frame being rendered to finish so that
// frame is counted against the old board.
func (s *Session) resetFrames() int {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	dropped := s.queue.Drain()
	s.renderGen.Store(0)
	return dropped
}
