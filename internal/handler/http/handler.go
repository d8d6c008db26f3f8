package http

import (
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/models"
)

// Handler serves the local status API: connection state, build info and
// the notification lists.
type Handler struct {
	connection    ConnectionInfo
	notifications NotificationLists
	buildInfo     models.AppBuildInfo

	logger *logger.Logger
}

// NewHandler returns a Handler reading from the given stores.
func NewHandler(connection ConnectionInfo, notifications NotificationLists, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		connection:    connection,
		notifications: notifications,
		buildInfo:     buildInfo,
		logger:        logger,
	}
}
