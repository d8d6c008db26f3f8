package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/auth"
	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/resource"
	"github.com/ogdevs/backoffice-client/models"
)

func testConfig(t *testing.T, baseURL string) *config.ClientConfig {
	t.Helper()
	cfg := config.NewClientConfig(config.Defaults())
	cfg.Adapter.BaseURL = baseURL
	cfg.Auth.IssuerURL = baseURL + "/realms/backoffice"
	cfg.Storage.DSN = "file:" + filepath.Join(t.TempDir(), "client.db")
	cfg.Search.Debounce = 10 * time.Millisecond
	return cfg
}

func newTestApp(t *testing.T, cfg *config.ClientConfig, opts Options) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("1.0.0", "today", "abc"), logger.Nop(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func login(t *testing.T, app *App) {
	t.Helper()
	require.NoError(t, app.storages.Credentials.Save(context.Background(), models.Credential{
		Username:    "alice",
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}))
}

func TestApp_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			_ = json.NewEncoder(w).Encode([]models.SearchResult{{ID: "7", EntityType: "Ticket", DisplayName: "Printer"}})
		case "/api/users/search":
			_ = json.NewEncoder(w).Encode([]models.UserSummary{{ID: "3", Username: "bob"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	app := newTestApp(t, testConfig(t, srv.URL), Options{})
	login(t, app)

	items := app.Search(context.Background(), "pr")
	require.Len(t, items, 2)
	assert.Equal(t, "Printer", items[0].DisplayName)
	assert.Equal(t, models.UserEntityType, items[1].EntityType)
	assert.Equal(t, "No email provided", items[1].Description)
	assert.Equal(t, items, app.Results.Results().Items)
}

func TestApp_SendChatMessage_NotLoggedIn(t *testing.T) {
	var redirected string
	app := newTestApp(t, testConfig(t, "http://localhost:1"), Options{
		Redirect: func(_ context.Context, authURL string) error {
			redirected = authURL
			return nil
		},
	})

	err := app.SendChatMessage(context.Background(), models.MessageRequest{ChatRoomID: 1, Message: "hi"})
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Contains(t, redirected, "client_id=backoffice")
	assert.Equal(t, models.Disconnected, app.Channel.State())
}

func TestApp_SendChatMessage_Invalid(t *testing.T) {
	app := newTestApp(t, testConfig(t, "http://localhost:1"), Options{})

	err := app.SendChatMessage(context.Background(), models.MessageRequest{ChatRoomID: 1})
	require.ErrorIs(t, err, resource.ErrValidation)
}

func TestApp_Close_ClearsNotifications(t *testing.T) {
	rec := &alert.Recorder{}
	app, err := NewApp(context.Background(), testConfig(t, "http://localhost:1"), models.AppBuildInfo{}, logger.Nop(), Options{Alerter: rec})
	require.NoError(t, err)

	app.Notifications.Append(models.ProcessChannel, models.Notification{ID: 1, Message: "x"})
	app.Notifications.Append(models.AuditChannel, models.Notification{ID: 2, Message: "audit"})

	require.NoError(t, app.Close())
	assert.Empty(t, app.Notifications.Snapshot(models.ProcessChannel))
	assert.Empty(t, app.Notifications.Snapshot(models.AuditChannel))
	assert.Equal(t, models.Disconnected, app.Channel.State())
}

func TestApp_AlertsFanOut(t *testing.T) {
	rec := &alert.Recorder{}
	app := newTestApp(t, testConfig(t, "http://localhost:1"), Options{Alerter: rec})

	app.Alerts().ShowWarning("careful")

	assert.Equal(t, []string{"careful"}, rec.Messages(alert.Warning))
	select {
	case a := <-app.alertCh.C:
		assert.Equal(t, "careful", a.Message)
	default:
		t.Fatal("alert was not queued for the dashboard")
	}
}
