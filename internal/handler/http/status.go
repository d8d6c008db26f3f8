package http

import (
	"net/http"

	"github.com/ogdevs/backoffice-client/internal/utils"
	"github.com/ogdevs/backoffice-client/models"
)

type statusResponse struct {
	State    models.ConnectionState `json:"state"`
	Attempts int                    `json:"attempts"`
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, statusResponse{
		State:    h.connection.State(),
		Attempts: h.connection.Attempts(),
	}, http.StatusOK)
}
