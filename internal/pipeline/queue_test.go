package pipeline

import (
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := New(4)
	for i := 1; i <= 3; i++ {
		if !q.TryEnqueue(Frame{Generation: i}) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	for want := 1; want <= 3; want++ {
		f, ok := q.TryDequeue()
		if !ok || f.Generation != want {
			t.Fatalf("dequeue = (%d,%v), want (%d,true)", f.Generation, ok, want)
		}
	}
	if _, ok := q.TryDequeue(); ok {
		t.Fatal("dequeue from empty queue succeeded")
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := New(DefaultCapacity)
	for i := 0; i < DefaultCapacity; i++ {
		if !q.TryEnqueue(Frame{Generation: i}) {
			t.Fatalf("enqueue %d rejected below capacity", i)
		}
	}
	if !q.Full() {
		t.Fatal("queue at capacity not reported full")
	}
	for i := 0; i < 5; i++ {
		if q.TryEnqueue(Frame{Generation: 100 + i}) {
			t.Fatal("enqueue beyond capacity accepted")
		}
	}
	if q.Len() != DefaultCapacity {
		t.Fatalf("len = %d, want %d", q.Len(), DefaultCapacity)
	}
	if q.Dropped() != 5 || q.Enqueued() != DefaultCapacity {
		t.Fatalf("counters = %d dropped / %d enqueued", q.Dropped(), q.Enqueued())
	}
	// The oldest frame is still the first one accepted.
	if f, _ := q.TryDequeue(); f.Generation != 0 {
		t.Fatalf("head = %d, want 0", f.Generation)
	}
}

func TestQueueDrain(t *testing.T) {
	q := New(3)
	q.TryEnqueue(Frame{})
	q.TryEnqueue(Frame{})
	if n := q.Drain(); n != 2 {
		t.Fatalf("Drain = %d, want 2", n)
	}
	if q.Len() != 0 {
		t.Fatalf("len = %d after drain", q.Len())
	}
}

func TestQueueDefaultCapacity(t *testing.T) {
	if got := New(0).Cap(); got != DefaultCapacity {
		t.Fatalf("Cap = %d, want %d", got, DefaultCapacity)
	}
}

func TestQueueConcurrentProducerConsumer(t *testing.T) {
	q := New(DefaultCapacity)
	const total = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			q.TryEnqueue(Frame{Generation: i})
			if q.Len() > q.Cap() {
				t.Errorf("len %d exceeds capacity", q.Len())
				return
			}
		}
	}()

	last := -1
	received := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		f, ok := q.TryDequeue()
		if ok {
			if f.Generation <= last {
				t.Fatalf("frame %d delivered after %d", f.Generation, last)
			}
			last = f.Generation
			received++
			continue
		}
		select {
		case <-done:
			received += q.Drain()
			if uint64(received) != q.Enqueued() {
				t.Fatalf("received %d, enqueued %d", received, q.Enqueued())
			}
			if q.Enqueued()+q.Dropped() != total {
				t.Fatalf("enqueued+dropped = %d, want %d", q.Enqueued()+q.Dropped(), total)
			}
			return
		default:
		}
	}
}

func TestQueueStats(t *testing.T) {
	q := New(2)
	for i := 0; i < 3; i++ {
		q.TryEnqueue(Frame{Generation: i})
	}
	q.TryDequeue()
	got := q.Stats()
	want := Stats{Depth: 1, Capacity: 2, Enqueued: 2, Dropped: 1}
	if got != want {
		t.Fatalf("Stats = %+v, want %+v", got, want)
	}
	if s := got.String(); s != "queue 1/2, 2 queued, 1 dropped" {
		t.Fatalf("String = %q", s)
	}
}
