package notify

import "sync"

// Value is a single latest-value cell with subscriptions. The zero value
// holds the zero T and is ready to use.
type Value[T any] struct {
	mu  sync.RWMutex
	v   T
	obs observable[T]
}

// NewValue returns a cell holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Set stores x and publishes it.
func (c *Value[T]) Set(x T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = x
	c.obs.publish(x)
}

// Get returns the stored value.
func (c *Value[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v
}

// Subscribe delivers the current value immediately and then the latest value
// after every Set.
func (c *Value[T]) Subscribe() (<-chan T, func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.obs.subscribe(c.v)
}

// Close ends every subscription.
func (c *Value[T]) Close() {
	c.obs.closeAll()
}
