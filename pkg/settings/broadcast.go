package settings

import (
	"context"
	"sync"
)

// broadcaster fans changes out to watchers. Sends never block: a watcher
// whose buffer is full misses the change.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Change]struct{}
	done   chan struct{}
	closed bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		subs: make(map[chan Change]struct{}),
		done: make(chan struct{}),
	}
}

func (b *broadcaster) subscribe(ctx context.Context) <-chan Change {
	ch := make(chan Change, 16)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.remove(ch)
	}()
	return ch
}

func (b *broadcaster) remove(ch chan Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

func (b *broadcaster) publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

func (b *broadcaster) close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()
}
