package adapter

import (
	"context"
	"net/http"

	"github.com/ogdevs/backoffice-client/models"
)

type entitySearcher struct {
	rest *RESTClient
}

// NewEntitySearcher returns the [EntitySearcher] backed by GET /search.
func NewEntitySearcher(rest *RESTClient) EntitySearcher {
	return &entitySearcher{rest: rest}
}

// SearchEntities implements [EntitySearcher].
func (s *entitySearcher) SearchEntities(ctx context.Context, query string) ([]models.SearchResult, error) {
	req, err := s.rest.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	req.SetQueryParam("query", query).SetResult(&results)

	if _, err = s.rest.do(req, http.MethodGet, "/search", "SearchEntities"); err != nil {
		return nil, err
	}
	return results, nil
}
