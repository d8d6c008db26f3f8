package config

import (
	"fmt"
	"time"
)

// ClientAuth holds identity provider settings used by the auth collaborator.
type ClientAuth struct {
	IssuerURL   string
	ClientID    string
	RedirectURL string
	MinValidity time.Duration
}

// ClientAdapter holds REST settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the REST root every resource path is resolved against.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// UploadTimeout applies to long-running requests.
	UploadTimeout time.Duration
	// UserCacheTTL is the lifetime of cached user-directory lookups.
	UserCacheTTL time.Duration
}

// ClientRealtime holds the notification channel settings.
type ClientRealtime struct {
	Endpoint    string
	Topic       string
	BaseDelay   time.Duration
	Factor      float64
	MaxAttempts int
}

// ClientSearch holds the search pipeline tuning.
type ClientSearch struct {
	Debounce  time.Duration
	MinLength int
}

// ClientStorage holds the local credential cache settings.
type ClientStorage struct {
	// DSN is the sqlite connection string.
	DSN string
	// Key seals cached tokens when set.
	Key string
}

// ClientStatus holds the local status endpoint settings.
type ClientStatus struct {
	Address        string
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	LogLevel string
	Auth     ClientAuth
	Adapter  ClientAdapter
	Realtime ClientRealtime
	Search   ClientSearch
	Storage  ClientStorage
	Status   ClientStatus
}

// GetClientConfig builds and validates the client config view from the merged
// structured configuration.
//
// flagCfg is the value returned by [BindFlags] after the command line was
// parsed; nil means no flags were registered.
func GetClientConfig(flagCfg *StructuredConfig) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flagCfg)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the structured config onto the client view without
// validating it.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		LogLevel: cfg.App.LogLevel,
		Auth: ClientAuth{
			IssuerURL:   cfg.Auth.IssuerURL,
			ClientID:    cfg.Auth.ClientID,
			RedirectURL: cfg.Auth.RedirectURL,
			MinValidity: cfg.Auth.MinValidity,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			UploadTimeout:  cfg.Adapter.UploadTimeout,
			UserCacheTTL:   cfg.Adapter.UserCacheTTL,
		},
		Realtime: ClientRealtime{
			Endpoint:    cfg.Realtime.Endpoint,
			Topic:       cfg.Realtime.Topic,
			BaseDelay:   cfg.Realtime.BaseDelay,
			Factor:      cfg.Realtime.Factor,
			MaxAttempts: cfg.Realtime.MaxAttempts,
		},
		Search: ClientSearch{
			Debounce:  cfg.Search.Debounce,
			MinLength: cfg.Search.MinLength,
		},
		Storage: ClientStorage{DSN: cfg.Storage.DB.DSN, Key: cfg.Storage.Key},
		Status: ClientStatus{
			Address:        cfg.Status.Address,
			RequestTimeout: cfg.Status.RequestTimeout,
		},
	}
}
