package server

import "context"

// Server is a transport server managed by this package.
type Server interface {
	// Run serves until ctx is done, then shuts down gracefully.
	Run(ctx context.Context) error

	// Addr returns the bound listen address once Run has started listening.
	Addr() string
}
