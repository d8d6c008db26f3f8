package search

import (
	"github.com/ogdevs/backoffice-client/internal/notify"
	"github.com/ogdevs/backoffice-client/models"
)

// Results is one completed search.
type Results struct {
	Query string                `json:"query"`
	Items []models.SearchResult `json:"items"`
}

// ResultStore is the shared result set read by every view of the search.
type ResultStore struct {
	value *notify.Value[Results]
}

// NewResultStore returns an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{value: notify.NewValue(Results{})}
}

// Update replaces the current result set.
func (s *ResultStore) Update(query string, items []models.SearchResult) {
	s.value.Set(Results{Query: query, Items: append([]models.SearchResult(nil), items...)})
}

// Clear empties the result set.
func (s *ResultStore) Clear() {
	s.value.Set(Results{})
}

// Results returns the current result set.
func (s *ResultStore) Results() Results {
	r := s.value.Get()
	r.Items = append([]models.SearchResult(nil), r.Items...)
	return r
}

// Subscribe delivers the current results and every later change.
func (s *ResultStore) Subscribe() (<-chan Results, func()) {
	return s.value.Subscribe()
}

// Close ends every subscription.
func (s *ResultStore) Close() {
	s.value.Close()
}
