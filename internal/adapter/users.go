package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ogdevs/backoffice-client/models"
	"github.com/patrickmn/go-cache"
)

// userLookupRetries is the number of extra attempts of a failed lookup.
const userLookupRetries = 1

type userDirectory struct {
	rest  *RESTClient
	cache *cache.Cache
}

// NewUserDirectory returns the [UserDirectory] backed by
// GET /api/users/search. Successful lookups are cached for ttl; a zero ttl
// disables caching. A failed lookup is retried once.
func NewUserDirectory(rest *RESTClient, ttl time.Duration) UserDirectory {
	d := &userDirectory{rest: rest.withRetries(userLookupRetries, 50*time.Millisecond)}
	if ttl > 0 {
		d.cache = cache.New(ttl, 2*ttl)
	}
	return d
}

// SearchUsers implements [UserDirectory].
func (d *userDirectory) SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", ErrBadRequest)
	}

	key := strings.ToLower(query)
	if d.cache != nil {
		if cached, ok := d.cache.Get(key); ok {
			return cached.([]models.UserSummary), nil
		}
	}

	req, err := d.rest.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var users []models.UserSummary
	req.SetQueryParam("query", query).SetResult(&users)

	if _, err = d.rest.do(req, http.MethodGet, "/api/users/search", "SearchUsers"); err != nil {
		return nil, err
	}

	if d.cache != nil {
		d.cache.SetDefault(key, users)
	}
	return users, nil
}
