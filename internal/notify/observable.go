package notify

import "sync"

// observable keeps the latest value of T and pushes it to subscribers.
// Every subscriber channel has room for one value; a pending unread value is
// replaced by the newer one, so a slow reader sees only the latest state and
// never blocks the writer.
type observable[T any] struct {
	mu     sync.Mutex
	subs   map[int]chan T
	nextID int
}

func (o *observable[T]) subscribe(current T) (<-chan T, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.subs == nil {
		o.subs = make(map[int]chan T)
	}
	id := o.nextID
	o.nextID++

	ch := make(chan T, 1)
	ch <- current
	o.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			if c, ok := o.subs[id]; ok {
				delete(o.subs, id)
				close(c)
			}
		})
	}

	return ch, cancel
}

// publish must be called with the owner's state already updated.
func (o *observable[T]) publish(v T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, ch := range o.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

func (o *observable[T]) closeAll() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for id, ch := range o.subs {
		delete(o.subs, id)
		close(ch)
	}
}
