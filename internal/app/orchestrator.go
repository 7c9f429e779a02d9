package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/sourcegraph/conc"

	"lifeline/internal/control"
	"lifeline/internal/core"
)

// Run starts the input, simulation and render tasks and returns once all
// three have exited. The tasks stop when Quit is dispatched, Stop is called,
// or ctx is cancelled.
func (s *Session) Run(ctx context.Context, r Renderer, in control.InputSource) error {
	if err := s.bus.Complete(); err != nil {
		return fmt.Errorf("run session: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.stopMu.Lock()
	if s.stopped {
		s.stopMu.Unlock()
		return nil
	}
	s.cancel = cancel
	s.stopMu.Unlock()

	s.mu.Lock()
	size := s.engine.Size()
	s.mu.Unlock()
	if err := r.Initialize(size.W, size.H); err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}

	s.stopMu.Lock()
	if s.stopped {
		s.stopMu.Unlock()
		return nil
	}
	s.running.Store(true)
	s.stopMu.Unlock()
	// A cancelled parent must clear the flag too, or the busy loops would
	// only notice at their next context check.
	stop := context.AfterFunc(ctx, func() { s.running.Store(false) })
	defer stop()

	s.log.Info("session started", "size", size.String(), "queue_capacity", s.queue.Cap(), "max_tps", s.maxTPS)

	var wg conc.WaitGroup
	wg.Go(func() { s.inputLoop(ctx, in) })
	wg.Go(func() { s.simulationLoop(ctx) })
	wg.Go(func() { s.renderLoop(ctx, r) })
	wg.Wait()

	s.log.Info("session stopped",
		"generation", s.Generation(),
		"rendered", s.RenderGeneration(),
		"enqueued_frames", s.queue.Enqueued(),
		"dropped_frames", s.queue.Dropped(),
	)
	return nil
}

func (s *Session) inputLoop(ctx context.Context, in control.InputSource) {
	for s.Running() {
		key, err := in.Next(ctx)
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, context.Canceled) {
				// Nothing can reach the bus any more, so nobody could quit.
				s.log.Error("input source failed", "err", err)
				s.Stop()
			}
			return
		}
		cmd, ok := control.CommandForKey(key)
		if !ok {
			if key == control.KeyEscape {
				s.log.Debug("reserved key ignored", "key", "escape")
			}
			continue
		}
		s.log.Debug("command", "cmd", cmd.String())
		if err := s.bus.Dispatch(cmd); err != nil {
			s.log.Error("dispatch failed", "cmd", cmd.String(), "err", err)
		}
	}
}

// simulationLoop steps as fast as the queue allows. When the queue is full
// it yields and retries instead of blocking, trading CPU for throughput.
func (s *Session) simulationLoop(ctx context.Context) {
	pace := core.NewFixedStep(s.maxTPS)
	paced := pace.Capped()
	for s.Running() && ctx.Err() == nil {
		if paced && !pace.ShouldStep() {
			time.Sleep(time.Millisecond)
			continue
		}
		if !s.stepOnce() {
			runtime.Gosched()
		}
	}
}

func (s *Session) renderLoop(ctx context.Context, r Renderer) {
	s.mu.Lock()
	seed := s.engine.Seed()
	s.mu.Unlock()
	r.Render(seed)

	titles, _ := r.(TitleSetter)
	stats, _ := r.(StatsSetter)
	timer := time.NewTimer(s.renderInterval)
	defer timer.Stop()
	for s.Running() {
		if titles != nil {
			titles.SetTitle(s.Title())
		}
		if stats != nil {
			stats.SetQueueStats(s.queue.Stats())
		}
		s.renderNext(r)
		timer.Reset(s.renderInterval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// renderNext renders one queued frame, if any. Holding renderMu keeps a
// restart from draining the queue between the dequeue and the count.
func (s *Session) renderNext(r Renderer) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	if f, ok := s.queue.TryDequeue(); ok {
		r.Render(f.Board)
		s.renderGen.Add(1)
	}
}
