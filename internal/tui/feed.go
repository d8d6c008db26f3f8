package tui

import (
	"context"
	"sync"
)

// queryFeed forwards the search box contents to the search pipeline without
// blocking the UI. Values not yet taken by the pipeline are replaced by newer
// ones; the pipeline debounces anyway.
type queryFeed struct {
	mu      sync.Mutex
	latest  string
	pending bool

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// newQueryFeed starts pumping into out. Close stops the pump and closes out.
func newQueryFeed(out chan<- string) *queryFeed {
	ctx, cancel := context.WithCancel(context.Background())
	f := &queryFeed{
		wake:   make(chan struct{}, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go f.pump(ctx, out)
	return f
}

// Push replaces the value waiting to be forwarded.
func (f *queryFeed) Push(q string) {
	f.mu.Lock()
	f.latest = q
	f.pending = true
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Close forwards nothing more and closes the output channel. A value still
// waiting is dropped.
func (f *queryFeed) Close() {
	f.cancel()
	<-f.done
}

func (f *queryFeed) pump(ctx context.Context, out chan<- string) {
	defer close(f.done)
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.wake:
		}

		f.mu.Lock()
		q, ok := f.latest, f.pending
		f.pending = false
		f.mu.Unlock()
		if !ok {
			continue
		}

		select {
		case out <- q:
		case <-ctx.Done():
			return
		}
	}
}
