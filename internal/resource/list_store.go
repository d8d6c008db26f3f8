package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ogdevs/backoffice-client/internal/adapter"
	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/notify"
)

// ListStore holds the loaded entities of one resource.
type ListStore[T Entity] struct {
	client    Client[T]
	validate  *validator.Validate
	confirmer Confirmer
	alerts    alert.Alerter
	logger    *logger.Logger

	mu    sync.Mutex
	items *notify.Value[[]T]
}

// NewListStore builds a store over client. A nil validate gets a fresh
// validator and a nil confirmer approves every deletion.
func NewListStore[T Entity](
	client Client[T],
	validate *validator.Validate,
	confirmer Confirmer,
	alerts alert.Alerter,
	log *logger.Logger,
) *ListStore[T] {
	if validate == nil {
		validate = NewValidator()
	}
	if confirmer == nil {
		confirmer = AlwaysConfirm
	}
	return &ListStore[T]{
		client:    client,
		validate:  validate,
		confirmer: confirmer,
		alerts:    alerts,
		logger:    log.WithComponent("resource." + client.Name()),
		items:     notify.NewValue[[]T](nil),
	}
}

// Name returns the resource name.
func (s *ListStore[T]) Name() string {
	return s.client.Name()
}

// Items returns a copy of the current list.
func (s *ListStore[T]) Items() []T {
	return append([]T(nil), s.items.Get()...)
}

// Subscribe delivers the current list and every later change.
func (s *ListStore[T]) Subscribe() (<-chan []T, func()) {
	return s.items.Subscribe()
}

// Close ends every subscription.
func (s *ListStore[T]) Close() {
	s.items.Close()
}

// Load replaces the list with the server's.
func (s *ListStore[T]) Load(ctx context.Context) error {
	items, err := s.client.List(ctx)
	if err != nil {
		return s.fail("Load", err)
	}

	s.mu.Lock()
	s.items.Set(append([]T(nil), items...))
	s.mu.Unlock()

	s.logger.Debug().Str("func", "ListStore.Load").Int("count", len(items)).Msg("list loaded")
	return nil
}

// Get fetches one entity and refreshes its row when it is already listed.
func (s *ListStore[T]) Get(ctx context.Context, id int64) (T, error) {
	item, err := s.client.Get(ctx, id)
	if err != nil {
		return item, s.fail("Get", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items.Get()
	if i := indexOf(items, id); i >= 0 {
		next := append([]T(nil), items...)
		next[i] = item
		s.items.Set(next)
	}
	return item, nil
}

// Create validates item, sends it and appends the server's copy to the list.
func (s *ListStore[T]) Create(ctx context.Context, item T) (T, error) {
	if err := s.check(item); err != nil {
		return item, err
	}

	created, err := s.client.Create(ctx, item)
	if err != nil {
		return item, s.fail("Create", err)
	}

	s.mu.Lock()
	items := s.items.Get()
	next := make([]T, 0, len(items)+1)
	s.items.Set(append(append(next, items...), created))
	s.mu.Unlock()

	s.alerts.ShowInfo(fmt.Sprintf("%s created successfully.", s.singular()))
	return created, nil
}

// Update validates item, sends it and replaces the row with the server's copy.
func (s *ListStore[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	if err := s.check(item); err != nil {
		return item, err
	}

	updated, err := s.client.Update(ctx, id, item)
	if err != nil {
		return item, s.fail("Update", err)
	}

	s.mu.Lock()
	items := s.items.Get()
	next := append([]T(nil), items...)
	if i := indexOf(items, id); i >= 0 {
		next[i] = updated
	} else {
		next = append(next, updated)
	}
	s.items.Set(next)
	s.mu.Unlock()

	s.alerts.ShowInfo(fmt.Sprintf("%s updated successfully.", s.singular()))
	return updated, nil
}

// Delete asks for confirmation, deletes the entity on the server and removes
// its row. A declined prompt returns ErrCancelled without any request.
func (s *ListStore[T]) Delete(ctx context.Context, id int64) error {
	ok, err := s.confirmer.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete this %s?", strings.ToLower(s.singular())))
	if err != nil {
		return fmt.Errorf("confirm %s deletion: %w", s.Name(), err)
	}
	if !ok {
		return ErrCancelled
	}

	if err = s.client.Delete(ctx, id); err != nil {
		return s.fail("Delete", err)
	}

	s.mu.Lock()
	items := s.items.Get()
	next := make([]T, 0, len(items))
	for _, it := range items {
		if it.EntityID() != id {
			next = append(next, it)
		}
	}
	s.items.Set(next)
	s.mu.Unlock()

	s.alerts.ShowInfo(fmt.Sprintf("%s deleted successfully.", s.singular()))
	return nil
}

// Upload sends a file through the client's upload endpoint and appends the
// resulting entity.
func (s *ListStore[T]) Upload(ctx context.Context, fileName string, r io.Reader) (T, error) {
	var zero T
	up, ok := s.client.(Uploader[T])
	if !ok {
		return zero, s.fail("Upload", fmt.Errorf("%s upload: %w", s.Name(), adapter.ErrUnsupported))
	}

	item, err := up.Upload(ctx, fileName, r)
	if err != nil {
		return zero, s.fail("Upload", err)
	}

	s.mu.Lock()
	items := s.items.Get()
	next := make([]T, 0, len(items)+1)
	s.items.Set(append(append(next, items...), item))
	s.mu.Unlock()

	s.alerts.ShowInfo(fmt.Sprintf("%s uploaded successfully.", fileName))
	return item, nil
}

func (s *ListStore[T]) check(item T) error {
	if err := validate(s.validate, item); err != nil {
		s.alerts.ShowWarning(err.Error())
		return err
	}
	return nil
}

// fail logs err, shows its readable message and returns it wrapped.
func (s *ListStore[T]) fail(op string, err error) error {
	s.logger.Err(err).Str("func", "ListStore."+op).Msg("request failed")
	if !errors.Is(err, context.Canceled) {
		s.alerts.ShowError(adapter.Message(err))
	}
	return fmt.Errorf("%s %s: %w", s.Name(), op, err)
}

func (s *ListStore[T]) singular() string {
	return singularName(s.Name())
}

func indexOf[T Entity](items []T, id int64) int {
	for i, it := range items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}
