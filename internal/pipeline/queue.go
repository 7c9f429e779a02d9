// Package pipeline connects the simulation task to the render task through a
// bounded frame queue that drops new frames instead of blocking when full.
package pipeline

import (
	"fmt"
	"sync/atomic"

	"lifeline/internal/core"
)

// DefaultCapacity is the number of frames buffered between stepping and
// rendering.
const DefaultCapacity = 30

// Frame is a board snapshot queued for display. The producer must not write
// the board after enqueueing it.
type Frame struct {
	Board      *core.Board
	Generation int
}

// Queue is a bounded FIFO of frames. It is safe for one producer and one
// consumer running concurrently; Drain may be called from any goroutine.
type Queue struct {
	frames   chan Frame
	enqueued atomic.Uint64
	dropped  atomic.Uint64
}

// New returns a queue holding at most capacity frames. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{frames: make(chan Frame, capacity)}
}

// TryEnqueue appends f if there is room and reports whether it did. A full
// queue drops the frame.
func (q *Queue) TryEnqueue(f Frame) bool {
	select {
	case q.frames <- f:
		q.enqueued.Add(1)
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// TryDequeue removes and returns the oldest frame, if any.
func (q *Queue) TryDequeue() (Frame, bool) {
	select {
	case f := <-q.frames:
		return f, true
	default:
		return Frame{}, false
	}
}

// Drain discards every queued frame and returns how many were removed.
func (q *Queue) Drain() int {
	n := 0
	for {
		if _, ok := q.TryDequeue(); !ok {
			return n
		}
		n++
	}
}

// Len returns the number of queued frames.
func (q *Queue) Len() int { return len(q.frames) }

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return cap(q.frames) }

// Full reports whether the next TryEnqueue would drop.
func (q *Queue) Full() bool { return len(q.frames) >= cap(q.frames) }

// Enqueued returns the number of frames accepted so far.
func (q *Queue) Enqueued() uint64 { return q.enqueued.Load() }

// Dropped returns the number of frames rejected because the queue was full.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }

// Stats is a snapshot of the queue counters.
type Stats struct {
	Depth    int
	Capacity int
	Enqueued uint64
	Dropped  uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("queue %d/%d, %d queued, %d dropped", s.Depth, s.Capacity, s.Enqueued, s.Dropped)
}

// Stats returns the current counters. The fields are read one at a time, so
// a snapshot taken under load may be slightly inconsistent.
func (q *Queue) Stats() Stats {
	return Stats{Depth: q.Len(), Capacity: q.Cap(), Enqueued: q.Enqueued(), Dropped: q.Dropped()}
}
