package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/utils"
)

// RESTClient is the shared transport of every collaborator in this package.
type RESTClient struct {
	client *utils.HTTPClient
	tokens TokenSource

	uploadTimeout time.Duration

	logger *logger.Logger
}

// NewRESTClient constructs the shared transport. It normalises and validates
// the base URL from adapterCfg.BaseURL and configures the underlying HTTP
// client with the resolved base URL and request timeout.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewRESTClient(adapterCfg config.ClientAdapter, tokens TokenSource, logger *logger.Logger) (*RESTClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	return &RESTClient{
		client:        utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		tokens:        tokens,
		uploadTimeout: adapterCfg.UploadTimeout,
		logger:        logger.WithComponent("adapter"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// BaseURL returns the normalised REST root.
func (c *RESTClient) BaseURL() string {
	return c.client.BaseURL
}

// withRetries returns a copy of c whose requests are retried up to n times
// on transport errors and 5xx responses.
func (c *RESTClient) withRetries(n int, wait time.Duration) *RESTClient {
	cloned := c.client.Clone().
		SetRetryCount(n).
		SetRetryWaitTime(wait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || (resp != nil && resp.StatusCode() >= http.StatusInternalServerError)
		})

	cp := *c
	cp.client = &utils.HTTPClient{Client: cloned}
	return &cp
}

// authedRequest builds a request carrying the bearer token and, when ctx has
// one, the trace id as X-Request-ID.
func (c *RESTClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token)

	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader("X-Request-ID", traceID)
	}

	return req, nil
}

// do executes req and maps transport and status errors. op names the call in
// wrapped errors.
func (c *RESTClient) do(req *resty.Request, method, path, op string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Err(err).
			Str("func", op).
			Str("path", path).
			Msg("request failed")
		return nil, fmt.Errorf("%s request: %w", op, mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		c.logger.Debug().
			Str("func", op).
			Str("path", path).
			Int("status", resp.StatusCode()).
			Msg("request rejected")
		return nil, err
	}
	return resp, nil
}
