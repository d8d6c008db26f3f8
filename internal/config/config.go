// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// back-office client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, an
// optional JSON/YAML file and finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the log level.
	App App `envPrefix:"APP_"`

	// Auth holds the identity provider settings used to obtain and refresh
	// the bearer token.
	Auth Auth `envPrefix:"AUTH_"`

	// Adapter holds the REST backend address and request timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Realtime holds the websocket endpoint and the reconnect policy.
	Realtime Realtime `envPrefix:"REALTIME_"`

	// Search holds the tuning of the global search pipeline.
	Search Search `envPrefix:"SEARCH_"`

	// Storage holds the local credential cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Status holds the local status endpoint settings.
	Status Status `envPrefix:"STATUS_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogLevel is the zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds identity provider settings.
type Auth struct {
	// IssuerURL is the realm URL of the identity provider
	// (e.g. "http://localhost:8080/realms/backoffice").
	// Env: AUTH_ISSUER_URL
	IssuerURL string `env:"ISSUER_URL"`

	// ClientID is the public client registered at the identity provider.
	// Env: AUTH_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// RedirectURL is where the identity provider sends the browser back
	// after an interactive login.
	// Env: AUTH_REDIRECT_URL
	RedirectURL string `env:"REDIRECT_URL"`

	// MinValidity is the minimum remaining lifetime of the access token
	// before it is refreshed.
	// Env: AUTH_MIN_VALIDITY
	MinValidity time.Duration `env:"MIN_VALIDITY"`
}

// Adapter holds REST backend settings.
type Adapter struct {
	// BaseURL is the back-office REST root (e.g. "http://localhost:8089").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// UploadTimeout bounds long-running calls such as document uploads.
	// Env: ADAPTER_UPLOAD_TIMEOUT
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT"`

	// UserCacheTTL is how long user-directory lookups are cached. Zero (the
	// default) sends every lookup to the backend.
	// Env: ADAPTER_USER_CACHE_TTL
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL"`
}

// Realtime holds the notification channel settings.
type Realtime struct {
	// Endpoint is the websocket endpoint; http(s) schemes are mapped to ws(s).
	// Env: REALTIME_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// Topic is the broadcast destination subscribed to after connecting.
	// Env: REALTIME_TOPIC
	Topic string `env:"TOPIC"`

	// BaseDelay is the first reconnect delay.
	// Env: REALTIME_BASE_DELAY
	BaseDelay time.Duration `env:"BASE_DELAY"`

	// Factor multiplies the delay on every further attempt.
	// Env: REALTIME_FACTOR
	Factor float64 `env:"FACTOR"`

	// MaxAttempts is the number of reconnects before the channel gives up.
	// Env: REALTIME_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`
}

// Search holds the global search tuning.
type Search struct {
	// Debounce is the quiet window before a query is dispatched.
	// Env: SEARCH_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE"`

	// MinLength is the shortest trimmed query that is dispatched.
	// Env: SEARCH_MIN_LENGTH
	MinLength int `env:"MIN_LENGTH"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB holds the sqlite credential cache settings.
	DB DB `envPrefix:"DB_"`

	// Key is the passphrase the cached tokens are sealed with. Empty keeps
	// them in plain text.
	// Env: STORAGE_KEY
	Key string `env:"KEY"`
}

// DB holds connection settings for the local sqlite database.
type DB struct {
	// DSN is the sqlite data source (e.g. "file:backoffice.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Status holds local status endpoint settings.
type Status struct {
	// Address is the "host:port" the status endpoint listens on. Empty
	// disables the endpoint.
	// Env: STATUS_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single status request.
	// Env: STATUS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (the first non-zero
// value wins):
//  1. Environment variables
//  2. Command-line flags (flagCfg, bound by [BindFlags]; may be nil)
//  3. JSON/YAML file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(flagCfg *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flagCfg).
		withFile().
		withDefaults().
		build()
}
