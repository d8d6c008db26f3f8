package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		errorMsg    string
		expected    string
	}{
		{name: "valid localhost", input: "localhost:8090", expected: "localhost:8090"},
		{name: "valid IPv4", input: "127.0.0.1:9090", expected: "127.0.0.1:9090"},
		{name: "any interface", input: ":9090", expected: ":9090"},
		{name: "missing colon", input: "localhost8080", expectError: true, errorMsg: "need address in a form `host:port`"},
		{name: "non-numeric port", input: "localhost:abc", expectError: true, errorMsg: "invalid syntax"},
		{name: "zero port", input: "localhost:0", expectError: true, errorMsg: "port number"},
		{name: "port too large", input: "localhost:70000", expectError: true, errorMsg: "port number"},
		{name: "invalid IP address", input: "invalid.host:8080", expectError: true, errorMsg: "incorrect IP-address provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst string
			addr := &NetAddress{dst: &dst}
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Empty(t, dst)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr.String())
			assert.Equal(t, tt.expected, dst)
		})
	}
}

func TestBindFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-c", "/path/config.yaml",
				"--log-level", "warn",
				"--issuer-url", "http://idp/realms/bo",
				"--client-id", "cli",
				"--redirect-url", "http://localhost:4200/",
				"--min-validity", "1m",
				"-b", "http://backend:8089",
				"--request-timeout", "30s",
				"--upload-timeout", "2m",
				"--user-cache-ttl", "10s",
				"--ws-endpoint", "ws://backend/ws",
				"--ws-topic", "/room/x",
				"--reconnect-delay", "2s",
				"--reconnect-factor", "2.5",
				"--reconnect-attempts", "9",
				"--search-debounce", "100ms",
				"--search-min-length", "4",
				"-d", "file:x.db",
				"-a", "localhost:8090",
				"--status-timeout", "4s",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/config.yaml", cfg.FilePath)
				assert.Equal(t, "warn", cfg.App.LogLevel)
				assert.Equal(t, "http://idp/realms/bo", cfg.Auth.IssuerURL)
				assert.Equal(t, "cli", cfg.Auth.ClientID)
				assert.Equal(t, "http://localhost:4200/", cfg.Auth.RedirectURL)
				assert.Equal(t, time.Minute, cfg.Auth.MinValidity)
				assert.Equal(t, "http://backend:8089", cfg.Adapter.BaseURL)
				assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
				assert.Equal(t, 2*time.Minute, cfg.Adapter.UploadTimeout)
				assert.Equal(t, 10*time.Second, cfg.Adapter.UserCacheTTL)
				assert.Equal(t, "ws://backend/ws", cfg.Realtime.Endpoint)
				assert.Equal(t, "/room/x", cfg.Realtime.Topic)
				assert.Equal(t, 2*time.Second, cfg.Realtime.BaseDelay)
				assert.Equal(t, 2.5, cfg.Realtime.Factor)
				assert.Equal(t, 9, cfg.Realtime.MaxAttempts)
				assert.Equal(t, 100*time.Millisecond, cfg.Search.Debounce)
				assert.Equal(t, 4, cfg.Search.MinLength)
				assert.Equal(t, "file:x.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "localhost:8090", cfg.Status.Address)
				assert.Equal(t, 4*time.Second, cfg.Status.RequestTimeout)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg := BindFlags(fs)

			require.NoError(t, fs.Parse(tt.args))
			tt.validate(t, cfg)
		})
	}
}

func TestBindFlags_InvalidStatusAddress(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)

	assert.Error(t, fs.Parse([]string{"-a", "invalid"}))
}
