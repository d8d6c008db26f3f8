package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/handler"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/notify"
	"github.com/ogdevs/backoffice-client/models"
)

type connected struct{}

func (connected) State() models.ConnectionState { return models.Connected }
func (connected) Attempts() int                 { return 0 }

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(nil, config.ClientStatus{Address: "127.0.0.1:0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoHandlers)
}

func TestNewServer_NoAddress(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.ClientStatus{}, logger.Nop())
	assert.ErrorIs(t, err, errStatusDisabled)
}

func TestServer_ServesAndShutsDown(t *testing.T) {
	cfg := config.ClientStatus{Address: "127.0.0.1:0", RequestTimeout: time.Second}
	handlers, err := handler.NewHandlers(handler.Dependencies{
		Connection:    connected{},
		Notifications: notify.NewNotificationStore(),
		BuildInfo:     models.NewAppBuildInfo("1.0.0", "", ""),
	}, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + "/api/status")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"state":"connected","attempts":0}`, string(body))

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenError(t *testing.T) {
	srv := newHTTPServer(http.NotFoundHandler(), "256.0.0.1:bad", 0, logger.Nop())

	err := srv.Run(context.Background())
	assert.Error(t, err)
}
