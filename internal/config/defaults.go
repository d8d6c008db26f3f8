package config

import "time"

// Defaults returns the values used for every field no other source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: "info"},
		Auth: Auth{
			IssuerURL:   "http://localhost:8080/realms/backoffice",
			ClientID:    "backoffice",
			RedirectURL: "http://localhost:4200/",
			MinValidity: 30 * time.Second,
		},
		Adapter: Adapter{
			BaseURL:        "http://localhost:8089",
			RequestTimeout: 30 * time.Second,
			UploadTimeout:  120 * time.Second,
		},
		Realtime: Realtime{
			Endpoint:    "http://localhost:8089/ws/websocket",
			Topic:       "/room/notifications",
			BaseDelay:   5 * time.Second,
			Factor:      1.5,
			MaxAttempts: 5,
		},
		Search: Search{
			Debounce:  300 * time.Millisecond,
			MinLength: 2,
		},
		Storage: Storage{DB: DB{DSN: "file:backoffice.db?_foreign_keys=on"}},
		Status:  Status{RequestTimeout: 5 * time.Second},
	}
}
