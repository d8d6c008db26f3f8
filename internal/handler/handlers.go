package handler

import (
	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/handler/http"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/models"
)

// Dependencies are the runtime stores the handlers read from.
type Dependencies struct {
	Connection    http.ConnectionInfo
	Notifications http.NotificationLists
	BuildInfo     models.AppBuildInfo
}

// Handlers groups the transport handlers served by the status server.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the handlers for cfg. It fails when the status server
// has no listen address.
func NewHandlers(deps Dependencies, cfg config.ClientStatus, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Address == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(deps.Connection, deps.Notifications, deps.BuildInfo, logger),
	}, nil
}
