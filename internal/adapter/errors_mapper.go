package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	httpErr := &HTTPError{StatusCode: resp.StatusCode(), Body: body}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		httpErr.kind = ErrBadRequest
	case http.StatusUnauthorized:
		httpErr.kind = ErrUnauthorized
	case http.StatusForbidden:
		httpErr.kind = ErrForbidden
	case http.StatusNotFound:
		httpErr.kind = ErrNotFound
	case http.StatusConflict:
		httpErr.kind = ErrConflict
	case http.StatusBadGateway:
		httpErr.kind = ErrBadGateway
	case http.StatusInternalServerError:
		httpErr.kind = ErrInternalServerError
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		httpErr.kind = ErrTimeout
	default:
		if httpErr.Body == "" {
			httpErr.Body = http.StatusText(resp.StatusCode())
		}
	}

	return httpErr
}

// mapTransportError classifies errors returned by resty before any response
// was read. Deadline expiry becomes ErrTimeout, everything else passes through.
func mapTransportError(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.Join(ErrTimeout, err)
	}
	return err
}

// Message returns a human-readable line for err: the server's own message when
// the response carried one, a fixed text per error kind otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if msg := serverMessage(httpErr.Body); msg != "" {
			return msg
		}
	}

	switch {
	case errors.Is(err, ErrTimeout):
		return "The server took too long to respond. Please try again."
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized: invalid or expired token."
	case errors.Is(err, ErrForbidden):
		return "Forbidden: you are not allowed to perform this action."
	case errors.Is(err, ErrNotFound):
		return "The requested item was not found."
	case errors.Is(err, ErrConflict):
		return "The item was changed by someone else."
	case errors.Is(err, ErrBadRequest):
		return "The request was rejected by the server."
	case errors.Is(err, ErrBadGateway), errors.Is(err, ErrInternalServerError):
		return "The server encountered an error. Please try again later."
	default:
		return "An unexpected error occurred."
	}
}

// serverMessage extracts {"message": ...} or {"error": ...} from a JSON body,
// or returns a short plain-text body as is.
func serverMessage(body string) string {
	if body == "" {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}

	if strings.HasPrefix(body, "<") || len(body) > 200 {
		return ""
	}
	return body
}
