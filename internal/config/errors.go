package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [ClientConfig.validate] when required configuration groups are incomplete
// or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid REST settings
	// (for example, a malformed base URL or zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidAuthConfigs indicates invalid identity provider settings.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidRealtimeConfigs indicates an invalid endpoint or reconnect
	// policy.
	ErrInvalidRealtimeConfigs = errors.New("invalid realtime configuration")
	// ErrInvalidSearchConfigs indicates invalid search tuning.
	ErrInvalidSearchConfigs = errors.New("invalid search configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrUnsupportedConfigFile indicates a config file with an unknown
	// extension.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)
