package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/utils"
	"github.com/ogdevs/backoffice-client/models"
)

func (h *Handler) getNotifications(w http.ResponseWriter, r *http.Request) {
	ch, err := channelParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list := h.notifications.Snapshot(ch)
	if list == nil {
		list = []models.Notification{}
	}
	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) clearNotifications(w http.ResponseWriter, r *http.Request) {
	ch, err := channelParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.notifications.Clear(ch)
	logger.FromRequest(r).Info().Str("func", "Handler.clearNotifications").Str("channel", string(ch)).Msg("notifications cleared")
	w.WriteHeader(http.StatusNoContent)
}

func channelParam(r *http.Request) (models.NotificationChannel, error) {
	ch := models.NotificationChannel(chi.URLParam(r, "channel"))
	if !ch.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}
	return ch, nil
}
