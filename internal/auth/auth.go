// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth is the identity-provider collaborator of the client.
//
// It obtains tokens through the OpenID Connect token endpoint of the realm
// (password grant for interactive login, refresh_token grant to keep the
// session valid), caches the resulting [models.Credential] in the local
// store and hands fresh access tokens to the REST and realtime layers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/store"
	"github.com/ogdevs/backoffice-client/internal/utils"
	"github.com/ogdevs/backoffice-client/models"
)

const (
	tokenPath  = "/protocol/openid-connect/token"
	authPath   = "/protocol/openid-connect/auth"
	logoutPath = "/protocol/openid-connect/logout"
)

// RedirectFunc receives the authorization URL the user has to open to log in.
type RedirectFunc func(ctx context.Context, authURL string) error

// Client keeps the current session and talks to the token endpoint.
// It satisfies adapter.TokenSource.
type Client struct {
	cfg      config.ClientAuth
	http     *utils.HTTPClient
	repo     store.CredentialRepository
	redirect RedirectFunc
	logger   *logger.Logger
	now      func() time.Time

	mu         sync.Mutex
	credential models.Credential
	loaded     bool
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type tokenError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// NewClient builds the collaborator. repo may be nil, in which case the
// session lives only in memory. A nil redirect logs the login URL.
func NewClient(cfg config.ClientAuth, repo store.CredentialRepository, redirect RedirectFunc, log *logger.Logger) *Client {
	l := log.WithComponent("auth")
	if redirect == nil {
		redirect = func(_ context.Context, authURL string) error {
			l.Info().Str("func", "auth.Login").Str("url", authURL).Msg("open this URL to log in")
			return nil
		}
	}

	return &Client{
		cfg:      cfg,
		http:     utils.NewHTTPClient(strings.TrimRight(cfg.IssuerURL, "/"), 0),
		repo:     repo,
		redirect: redirect,
		logger:   l,
		now:      time.Now,
	}
}

// PasswordLogin exchanges username and password for a token pair and caches it.
func (c *Client) PasswordLogin(ctx context.Context, username, password string) (models.Credential, error) {
	cred, err := c.grant(ctx, map[string]string{
		"grant_type": "password",
		"client_id":  c.cfg.ClientID,
		"username":   username,
		"password":   password,
		"scope":      "openid",
	})
	if err != nil {
		return models.Credential{}, err
	}
	if cred.Username == "" {
		cred.Username = username
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storeLocked(ctx, cred); err != nil {
		return models.Credential{}, err
	}
	c.logger.Info().Str("func", "auth.PasswordLogin").Str("username", cred.Username).Msg("logged in")

	return cred, nil
}

// IsLoggedIn reports whether a credential exists that is still valid or can
// still be refreshed.
func (c *Client) IsLoggedIn(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cred := c.loadLocked(ctx)
	if cred.Empty() {
		return false
	}
	return cred.RefreshToken != "" || !cred.ExpiresWithin(c.now(), 0)
}

// Credential returns the cached session.
func (c *Client) Credential(ctx context.Context) (models.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cred := c.loadLocked(ctx)
	if cred.Empty() {
		return models.Credential{}, ErrNotAuthenticated
	}
	return cred, nil
}

// UpdateToken returns an access token valid for at least minValidity,
// refreshing the session first when needed. A rejected refresh clears the
// session and yields ErrNotAuthenticated.
func (c *Client) UpdateToken(ctx context.Context, minValidity time.Duration) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cred := c.loadLocked(ctx)
	if cred.Empty() {
		return "", ErrNotAuthenticated
	}
	if !cred.ExpiresWithin(c.now(), minValidity) {
		return cred.AccessToken, nil
	}
	if cred.RefreshToken == "" {
		c.clearLocked(ctx)
		return "", ErrNotAuthenticated
	}

	refreshed, err := c.grant(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"client_id":     c.cfg.ClientID,
		"refresh_token": cred.RefreshToken,
	})
	if errors.Is(err, ErrInvalidGrant) {
		c.logger.Warn().Str("func", "auth.UpdateToken").Msg("refresh token rejected, session dropped")
		c.clearLocked(ctx)
		return "", fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	if err != nil {
		return "", err
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cred.RefreshToken
	}

	if err := c.storeLocked(ctx, refreshed); err != nil {
		return "", err
	}
	c.logger.Debug().Str("func", "auth.UpdateToken").Time("expires_at", refreshed.ExpiresAt).Msg("token refreshed")

	return refreshed.AccessToken, nil
}

// AccessToken refreshes with the configured minimum validity.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	return c.UpdateToken(ctx, c.cfg.MinValidity)
}

// LoginURL is the authorization endpoint URL for the configured client.
func (c *Client) LoginURL() string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid")
	return strings.TrimRight(c.cfg.IssuerURL, "/") + authPath + "?" + q.Encode()
}

// Login hands the authorization URL to the redirect hook.
func (c *Client) Login(ctx context.Context) error {
	return c.redirect(ctx, c.LoginURL())
}

// Logout ends the session at the identity provider (best effort) and clears
// the local cache.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cred := c.loadLocked(ctx)
	if cred.RefreshToken != "" {
		resp, err := c.http.R().
			SetContext(ctx).
			SetFormData(map[string]string{
				"client_id":     c.cfg.ClientID,
				"refresh_token": cred.RefreshToken,
			}).
			Post(logoutPath)
		if err != nil || resp.IsError() {
			c.logger.Warn().Err(err).Str("func", "auth.Logout").Msg("identity provider logout failed")
		}
	}

	return c.clearLocked(ctx)
}

func (c *Client) grant(ctx context.Context, form map[string]string) (models.Credential, error) {
	var (
		token   tokenResponse
		failure tokenError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&token).
		SetError(&failure).
		Post(tokenPath)
	if err != nil {
		c.logger.Err(err).Str("func", "auth.grant").Str("grant_type", form["grant_type"]).Msg("token request failed")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrIdentityProvider, err)
	}

	if resp.IsError() {
		c.logger.Warn().
			Str("func", "auth.grant").
			Str("grant_type", form["grant_type"]).
			Int("status", resp.StatusCode()).
			Str("error", failure.Error).
			Msg("token endpoint rejected the grant")
		if resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnauthorized {
			return models.Credential{}, fmt.Errorf("%w: %s", ErrInvalidGrant, describe(failure, resp))
		}
		return models.Credential{}, fmt.Errorf("%w: %s", ErrIdentityProvider, describe(failure, resp))
	}

	if token.AccessToken == "" {
		return models.Credential{}, fmt.Errorf("%w: empty access token", ErrIdentityProvider)
	}

	return c.credentialFrom(token), nil
}

func (c *Client) credentialFrom(token tokenResponse) models.Credential {
	cred := models.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}

	claims, err := utils.ParseTokenClaims(token.AccessToken)
	if err != nil {
		// opaque token: rely on expires_in only
		c.logger.Debug().Err(err).Str("func", "auth.credentialFrom").Msg("access token is not a JWT")
	} else {
		cred.Subject = claims.Subject
		cred.Username = claims.Username
		cred.Roles = claims.Roles
		cred.ExpiresAt = claims.ExpiresAt
	}

	if cred.ExpiresAt.IsZero() && token.ExpiresIn > 0 {
		cred.ExpiresAt = c.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return cred
}

func (c *Client) loadLocked(ctx context.Context) models.Credential {
	if c.loaded || c.repo == nil {
		return c.credential
	}

	cred, err := c.repo.Load(ctx)
	switch {
	case err == nil:
		c.credential = cred
	case errors.Is(err, store.ErrCredentialNotFound):
	default:
		c.logger.Err(err).Str("func", "auth.load").Msg("failed to read cached credential")
		return c.credential
	}
	c.loaded = true

	return c.credential
}

func (c *Client) storeLocked(ctx context.Context, cred models.Credential) error {
	c.credential = cred
	c.loaded = true
	if c.repo == nil {
		return nil
	}
	if err := c.repo.Save(ctx, cred); err != nil {
		return fmt.Errorf("failed to cache credential: %w", err)
	}
	return nil
}

func (c *Client) clearLocked(ctx context.Context) error {
	c.credential = models.Credential{}
	c.loaded = true
	if c.repo == nil {
		return nil
	}
	if err := c.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cached credential: %w", err)
	}
	return nil
}

func describe(failure tokenError, resp *resty.Response) string {
	switch {
	case failure.ErrorDescription != "":
		return failure.ErrorDescription
	case failure.Error != "":
		return failure.Error
	default:
		return resp.Status()
	}
}
