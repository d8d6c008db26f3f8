// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.yaml",

		"APP_LOG_LEVEL": "debug",

		"AUTH_ISSUER_URL":   "http://idp:8080/realms/bo",
		"AUTH_CLIENT_ID":    "bo-cli",
		"AUTH_REDIRECT_URL": "http://localhost:4200/",
		"AUTH_MIN_VALIDITY": "45s",

		"ADAPTER_BASE_URL":        "http://backend:8089",
		"ADAPTER_REQUEST_TIMEOUT": "10s",
		"ADAPTER_UPLOAD_TIMEOUT":  "2m",
		"ADAPTER_USER_CACHE_TTL":  "90s",

		"REALTIME_ENDPOINT":     "https://backend/ws",
		"REALTIME_TOPIC":        "/room/other",
		"REALTIME_BASE_DELAY":   "1s",
		"REALTIME_FACTOR":       "2",
		"REALTIME_MAX_ATTEMPTS": "3",

		"SEARCH_DEBOUNCE":   "200ms",
		"SEARCH_MIN_LENGTH": "3",

		"STORAGE_DB_DSN": "file:test.db",
		"STORAGE_KEY":    "hunter2",

		"STATUS_ADDRESS":         "localhost:9000",
		"STATUS_REQUEST_TIMEOUT": "3s",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg, nil)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.yaml", cfg.FilePath)
	assert.Equal(t, "debug", cfg.App.LogLevel)

	assert.Equal(t, "http://idp:8080/realms/bo", cfg.Auth.IssuerURL)
	assert.Equal(t, "bo-cli", cfg.Auth.ClientID)
	assert.Equal(t, "http://localhost:4200/", cfg.Auth.RedirectURL)
	assert.Equal(t, 45*time.Second, cfg.Auth.MinValidity)

	assert.Equal(t, "http://backend:8089", cfg.Adapter.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Adapter.UploadTimeout)
	assert.Equal(t, 90*time.Second, cfg.Adapter.UserCacheTTL)

	assert.Equal(t, "https://backend/ws", cfg.Realtime.Endpoint)
	assert.Equal(t, "/room/other", cfg.Realtime.Topic)
	assert.Equal(t, time.Second, cfg.Realtime.BaseDelay)
	assert.Equal(t, 2.0, cfg.Realtime.Factor)
	assert.Equal(t, 3, cfg.Realtime.MaxAttempts)

	assert.Equal(t, 200*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 3, cfg.Search.MinLength)

	assert.Equal(t, "file:test.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "hunter2", cfg.Storage.Key)

	assert.Equal(t, "localhost:9000", cfg.Status.Address)
	assert.Equal(t, 3*time.Second, cfg.Status.RequestTimeout)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	err := parseEnv(&StructuredConfig{}, map[string]string{"SEARCH_DEBOUNCE": "soon"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read environment")
}

func TestParseEnv_ExplicitEnvironment(t *testing.T) {
	t.Setenv("ADAPTER_BASE_URL", "http://ignored:1")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg, map[string]string{"ADAPTER_BASE_URL": "http://backend:8089"})

	require.NoError(t, err)
	assert.Equal(t, "http://backend:8089", cfg.Adapter.BaseURL)
}
