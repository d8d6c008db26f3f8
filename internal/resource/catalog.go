package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ogdevs/backoffice-client/internal/adapter"
	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/models"
)

// Table is a ListStore with its entity type erased, for callers that pick the
// resource by name at runtime. Payloads are JSON documents.
type Table interface {
	Name() string
	Load(ctx context.Context) ([]any, error)
	Get(ctx context.Context, id int64) (any, error)
	Create(ctx context.Context, payload []byte) (any, error)
	Update(ctx context.Context, id int64, payload []byte) (any, error)
	Delete(ctx context.Context, id int64) error
	Upload(ctx context.Context, fileName string, r io.Reader) (any, error)
}

type table[T Entity] struct {
	*ListStore[T]
}

// Erase wraps s as a Table.
func Erase[T Entity](s *ListStore[T]) Table {
	return table[T]{s}
}

func (t table[T]) Load(ctx context.Context) ([]any, error) {
	if err := t.ListStore.Load(ctx); err != nil {
		return nil, err
	}
	items := t.Items()
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out, nil
}

func (t table[T]) Get(ctx context.Context, id int64) (any, error) {
	return t.ListStore.Get(ctx, id)
}

func (t table[T]) Create(ctx context.Context, payload []byte) (any, error) {
	item, err := decode[T](payload)
	if err != nil {
		return nil, err
	}
	return t.ListStore.Create(ctx, item)
}

func (t table[T]) Update(ctx context.Context, id int64, payload []byte) (any, error) {
	item, err := decode[T](payload)
	if err != nil {
		return nil, err
	}
	return t.ListStore.Update(ctx, id, item)
}

func (t table[T]) Upload(ctx context.Context, fileName string, r io.Reader) (any, error) {
	return t.ListStore.Upload(ctx, fileName, r)
}

func decode[T any](payload []byte) (T, error) {
	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return item, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return item, nil
}

// Catalog indexes the tables of every back-office resource by name.
type Catalog map[string]Table

// NewCatalog builds a list store per resource client.
func NewCatalog(
	res *adapter.Resources,
	confirmer Confirmer,
	alerts alert.Alerter,
	log *logger.Logger,
) Catalog {
	v := NewValidator()
	c := Catalog{}
	add := func(t Table) { c[t.Name()] = t }

	add(Erase(NewListStore[models.Ticket](res.Tickets, v, confirmer, alerts, log)))
	add(Erase(NewListStore[models.Document](res.Documents, v, confirmer, alerts, log)))
	add(Erase(NewListStore[models.Contract](res.Contracts, v, confirmer, alerts, log)))
	add(Erase(NewListStore[models.Project](res.Projects, v, confirmer, alerts, log)))
	add(Erase(NewListStore[models.Poste](res.Postes, v, confirmer, alerts, log)))
	add(Erase(NewListStore[models.Objective](res.Objectives, v, confirmer, alerts, log)))
	add(Erase(NewListStore[models.Audit](res.Audits, v, confirmer, alerts, log)))
	add(Erase(NewListStore[models.JobOffer](res.JobOffers, v, confirmer, alerts, log)))
	add(Erase(NewListStore[models.Training](res.Trainings, v, confirmer, alerts, log)))
	return c
}

// Lookup returns the table called name.
func (c Catalog) Lookup(name string) (Table, error) {
	t, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q (known: %v)", name, c.Names())
	}
	return t, nil
}

// Names lists the resource names in order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

