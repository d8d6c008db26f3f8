// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if !isHTTPURL(cfg.Adapter.BaseURL) || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.UploadTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if !isHTTPURL(cfg.Auth.IssuerURL) || cfg.Auth.ClientID == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Realtime.Endpoint == "" || cfg.Realtime.Topic == "" ||
		cfg.Realtime.BaseDelay <= 0 || cfg.Realtime.Factor < 1 || cfg.Realtime.MaxAttempts < 1 {
		return ErrInvalidRealtimeConfigs
	}

	if cfg.Search.Debounce < 0 || cfg.Search.MinLength < 1 {
		return ErrInvalidSearchConfigs
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
