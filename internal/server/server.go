package server

import (
	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/handler"
	"github.com/ogdevs/backoffice-client/internal/logger"
)

// NewServer builds the status server from the configured handlers.
func NewServer(handlers *handler.Handlers, cfg config.ClientStatus, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.Address == "" {
		return nil, errStatusDisabled
	}
	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoHandlers
	}

	return newHTTPServer(handlers.HTTP.Init(), cfg.Address, cfg.RequestTimeout, logger), nil
}
