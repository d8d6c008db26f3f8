package notify

import "github.com/ogdevs/backoffice-client/models"

// StatusStore publishes the connection state of the realtime channel.
type StatusStore struct {
	value *Value[models.ConnectionState]
}

// NewStatusStore starts in the disconnected state.
func NewStatusStore() *StatusStore {
	return &StatusStore{value: NewValue(models.Disconnected)}
}

// Set publishes state to every subscriber, even when it is unchanged.
func (s *StatusStore) Set(state models.ConnectionState) { s.value.Set(state) }

// Get returns the last published state.
func (s *StatusStore) Get() models.ConnectionState { return s.value.Get() }

// Subscribe behaves like [NotificationStore.Subscribe].
func (s *StatusStore) Subscribe() (<-chan models.ConnectionState, func()) {
	return s.value.Subscribe()
}

// Close ends every subscription.
func (s *StatusStore) Close() { s.value.Close() }
