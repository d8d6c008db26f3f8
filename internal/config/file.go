package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] for JSON and YAML files. Durations
// are accepted as "30s" strings or as integer nanoseconds.
type fileConfig struct {
	App struct {
		LogLevel string `json:"log_level" yaml:"log_level"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Auth struct {
		IssuerURL   string   `json:"issuer_url" yaml:"issuer_url"`
		ClientID    string   `json:"client_id" yaml:"client_id"`
		RedirectURL string   `json:"redirect_url" yaml:"redirect_url"`
		MinValidity Duration `json:"min_validity" yaml:"min_validity"`
	} `json:"auth,omitempty" yaml:"auth,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url" yaml:"base_url"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		UploadTimeout  Duration `json:"upload_timeout" yaml:"upload_timeout"`
		UserCacheTTL   Duration `json:"user_cache_ttl" yaml:"user_cache_ttl"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`

	Realtime struct {
		Endpoint    string   `json:"endpoint" yaml:"endpoint"`
		Topic       string   `json:"topic" yaml:"topic"`
		BaseDelay   Duration `json:"base_delay" yaml:"base_delay"`
		Factor      float64  `json:"factor" yaml:"factor"`
		MaxAttempts int      `json:"max_attempts" yaml:"max_attempts"`
	} `json:"realtime,omitempty" yaml:"realtime,omitempty"`

	Search struct {
		Debounce  Duration `json:"debounce" yaml:"debounce"`
		MinLength int      `json:"min_length" yaml:"min_length"`
	} `json:"search,omitempty" yaml:"search,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db,omitempty"`
		Key string `json:"key" yaml:"key"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Status struct {
		Address        string   `json:"address" yaml:"address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"status,omitempty" yaml:"status,omitempty"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFile, ext)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: fc.App.LogLevel},
		Auth: Auth{
			IssuerURL:   fc.Auth.IssuerURL,
			ClientID:    fc.Auth.ClientID,
			RedirectURL: fc.Auth.RedirectURL,
			MinValidity: time.Duration(fc.Auth.MinValidity),
		},
		Adapter: Adapter{
			BaseURL:        fc.Adapter.BaseURL,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			UploadTimeout:  time.Duration(fc.Adapter.UploadTimeout),
			UserCacheTTL:   time.Duration(fc.Adapter.UserCacheTTL),
		},
		Realtime: Realtime{
			Endpoint:    fc.Realtime.Endpoint,
			Topic:       fc.Realtime.Topic,
			BaseDelay:   time.Duration(fc.Realtime.BaseDelay),
			Factor:      fc.Realtime.Factor,
			MaxAttempts: fc.Realtime.MaxAttempts,
		},
		Search: Search{
			Debounce:  time.Duration(fc.Search.Debounce),
			MinLength: fc.Search.MinLength,
		},
		Storage: Storage{DB: DB{DSN: fc.Storage.DB.DSN}, Key: fc.Storage.Key},
		Status: Status{
			Address:        fc.Status.Address,
			RequestTimeout: time.Duration(fc.Status.RequestTimeout),
		},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling from
// strings like "1h", "30s" in JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
