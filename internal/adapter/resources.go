package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ResourcePaths are the endpoint templates of one resource. "{id}" is replaced
// with the entity id. An empty path means the backend has no such operation.
type ResourcePaths struct {
	List   string
	Get    string
	Create string
	Update string
	Delete string
	Upload string
}

// ResourceClient performs CRUD calls for one resource type T.
type ResourceClient[T any] struct {
	rest  *RESTClient
	name  string
	paths ResourcePaths
}

// NewResourceClient returns a client for the resource called name (used in
// logs and errors) served under paths.
func NewResourceClient[T any](rest *RESTClient, name string, paths ResourcePaths) *ResourceClient[T] {
	return &ResourceClient[T]{rest: rest, name: name, paths: paths}
}

// Name returns the resource name.
func (c *ResourceClient[T]) Name() string {
	return c.name
}

// List fetches every entity.
func (c *ResourceClient[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := c.call(ctx, http.MethodGet, c.paths.List, 0, nil, &items, "List"); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one entity.
func (c *ResourceClient[T]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := c.call(ctx, http.MethodGet, c.paths.Get, id, nil, &item, "Get")
	return item, err
}

// Create sends item and returns the server's copy. Backends that answer with a
// plain confirmation text yield item unchanged.
func (c *ResourceClient[T]) Create(ctx context.Context, item T) (T, error) {
	created := item
	err := c.call(ctx, http.MethodPost, c.paths.Create, 0, item, &created, "Create")
	return created, err
}

// Update replaces the entity id with item and returns the server's copy.
func (c *ResourceClient[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	updated := item
	err := c.call(ctx, http.MethodPut, c.paths.Update, id, item, &updated, "Update")
	return updated, err
}

// Delete removes the entity id.
func (c *ResourceClient[T]) Delete(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, c.paths.Delete, id, nil, nil, "Delete")
}

// Upload posts a file as multipart form data. The call is bounded by the
// upload timeout instead of the regular request timeout and fails with
// ErrTimeout when it expires.
func (c *ResourceClient[T]) Upload(ctx context.Context, fileName string, r io.Reader) (T, error) {
	var item T
	if c.paths.Upload == "" {
		return item, fmt.Errorf("%s upload: %w", c.name, ErrUnsupported)
	}

	if c.rest.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.rest.uploadTimeout)
		defer cancel()
	}

	req, err := c.rest.authedRequest(ctx)
	if err != nil {
		return item, err
	}
	req.SetFileReader("file", fileName, r).SetResult(&item)

	if _, err = c.rest.do(req, http.MethodPost, c.paths.Upload, c.name+".Upload"); err != nil {
		return item, err
	}
	return item, nil
}

func (c *ResourceClient[T]) call(ctx context.Context, method, tpl string, id int64, body, result any, op string) error {
	if tpl == "" {
		return fmt.Errorf("%s %s: %w", c.name, strings.ToLower(op), ErrUnsupported)
	}

	req, err := c.rest.authedRequest(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := c.rest.do(req, method, expandPath(tpl, id), c.name+"."+op)
	if err != nil {
		return err
	}

	if result != nil && isJSON(resp.Header().Get("Content-Type")) && len(resp.Body()) > 0 {
		if err = json.Unmarshal(resp.Body(), result); err != nil {
			return fmt.Errorf("decode %s %s response: %w", c.name, strings.ToLower(op), err)
		}
	}
	return nil
}

func expandPath(tpl string, id int64) string {
	return strings.ReplaceAll(tpl, "{id}", strconv.FormatInt(id, 10))
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}
