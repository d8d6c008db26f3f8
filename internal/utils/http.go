package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const jsonContentType = "application/json; charset=utf-8"

// WriteJSON encodes data as the response body with the given status. The
// status endpoints expose live client state, so responses are never cached.
// On an encoding failure a 500 is written instead and the error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("encode response: %w", err)
	}

	h := w.Header()
	h.Set("Content-Type", jsonContentType)
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// ErrorBody is the JSON shape of every non-2xx status response.
type ErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// WriteError writes msg as an [ErrorBody] with the given status.
func WriteError(w http.ResponseWriter, statusCode int, msg string) (int, error) {
	return WriteJSON(w, ErrorBody{Error: msg, Status: statusCode}, statusCode)
}
