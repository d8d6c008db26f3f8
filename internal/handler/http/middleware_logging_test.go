package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ogdevs/backoffice-client/internal/logger"
)

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
		want   []string
	}{
		{
			name:   "GET 200",
			method: http.MethodGet,
			path:   "/api/status",
			status: http.StatusOK,
			body:   "OK",
			want:   []string{`"method":"GET"`, `"uri":"/api/status"`, `"status":200`, `"size":2`, `"duration":`},
		},
		{
			name:   "DELETE 204",
			method: http.MethodDelete,
			path:   "/api/notifications/audit",
			status: http.StatusNoContent,
			want:   []string{`"method":"DELETE"`, `"status":204`, `"size":0`},
		},
		{
			name:   "bad request body counted",
			method: http.MethodGet,
			path:   "/api/notifications/x",
			status: http.StatusBadRequest,
			body:   `{"error":"bad"}`,
			want:   []string{`"status":400`, `"size":15`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.NewWriterLogger("test", &buf)}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), req)

			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}
