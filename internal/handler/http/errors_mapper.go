package http

import (
	"errors"
	"net/http"

	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrUnknownChannel: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	logger.FromRequest(r).Warn().Err(err).Int("status", status).Msg("request rejected")
	utils.WriteError(w, status, err.Error())
}
