package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/mock"
	"github.com/ogdevs/backoffice-client/internal/store"
	"github.com/ogdevs/backoffice-client/models"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, username string, exp time.Time, roles ...string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":                "sub-" + username,
		"preferred_username": username,
		"exp":                exp.Unix(),
		"realm_access":       map[string]any{"roles": roles},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

type idp struct {
	server *httptest.Server
	calls  atomic.Int32
	forms  chan url.Values
}

func newIDP(t *testing.T, handler func(w http.ResponseWriter, form url.Values)) *idp {
	t.Helper()
	p := &idp{forms: make(chan url.Values, 10)}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		p.calls.Add(1)
		p.forms <- r.PostForm
		switch r.URL.Path {
		case "/realms/bo" + tokenPath:
			handler(w, r.PostForm)
		case "/realms/bo" + logoutPath:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(p.server.Close)
	return p
}

func writeToken(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, p *idp, repo store.CredentialRepository) *Client {
	t.Helper()
	issuer := "http://unused/realms/bo"
	if p != nil {
		issuer = p.server.URL + "/realms/bo"
	}
	c := NewClient(config.ClientAuth{
		IssuerURL:   issuer,
		ClientID:    "backoffice",
		RedirectURL: "http://localhost:4200/",
		MinValidity: 30 * time.Second,
	}, repo, nil, logger.Nop())
	c.now = func() time.Time { return testNow }
	return c
}

func TestPasswordLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCredentialRepository(ctrl)

	access := signedToken(t, "jdoe", testNow.Add(5*time.Minute), "admin")
	p := newIDP(t, func(w http.ResponseWriter, form url.Values) {
		writeToken(w, http.StatusOK, map[string]any{
			"access_token": access, "refresh_token": "r1", "expires_in": 300, "token_type": "Bearer",
		})
	})
	c := newTestClient(t, p, repo)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cred models.Credential) error {
		assert.Equal(t, "jdoe", cred.Username)
		assert.Equal(t, "r1", cred.RefreshToken)
		return nil
	})

	cred, err := c.PasswordLogin(context.Background(), "jdoe", "secret")
	require.NoError(t, err)
	assert.Equal(t, access, cred.AccessToken)
	assert.Equal(t, "sub-jdoe", cred.Subject)
	assert.True(t, cred.HasRole("admin"))
	assert.Equal(t, testNow.Add(5*time.Minute).Unix(), cred.ExpiresAt.Unix())

	form := <-p.forms
	assert.Equal(t, "password", form.Get("grant_type"))
	assert.Equal(t, "backoffice", form.Get("client_id"))
	assert.Equal(t, "jdoe", form.Get("username"))
	assert.Equal(t, "secret", form.Get("password"))

	assert.True(t, c.IsLoggedIn(context.Background()))
}

func TestPasswordLogin_InvalidGrant(t *testing.T) {
	p := newIDP(t, func(w http.ResponseWriter, _ url.Values) {
		writeToken(w, http.StatusUnauthorized, map[string]string{
			"error": "invalid_grant", "error_description": "Invalid user credentials",
		})
	})
	c := newTestClient(t, p, nil)

	_, err := c.PasswordLogin(context.Background(), "jdoe", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGrant)
	assert.Contains(t, err.Error(), "Invalid user credentials")
}

func TestPasswordLogin_ServerError(t *testing.T) {
	p := newIDP(t, func(w http.ResponseWriter, _ url.Values) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(t, p, nil)

	_, err := c.PasswordLogin(context.Background(), "jdoe", "pw")
	assert.ErrorIs(t, err, ErrIdentityProvider)
	assert.NotErrorIs(t, err, ErrInvalidGrant)
}

func TestPasswordLogin_OpaqueTokenUsesExpiresIn(t *testing.T) {
	p := newIDP(t, func(w http.ResponseWriter, _ url.Values) {
		writeToken(w, http.StatusOK, map[string]any{"access_token": "opaque", "expires_in": 60})
	})
	c := newTestClient(t, p, nil)

	cred, err := c.PasswordLogin(context.Background(), "jdoe", "pw")
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Minute), cred.ExpiresAt)
}

func TestIsLoggedIn_LoadsFromRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCredentialRepository(ctrl)
	c := newTestClient(t, nil, repo)

	repo.EXPECT().Load(gomock.Any()).Return(models.Credential{
		AccessToken: "a", ExpiresAt: testNow.Add(time.Hour),
	}, nil).Times(1)

	assert.True(t, c.IsLoggedIn(context.Background()))
	// cached after the first read
	assert.True(t, c.IsLoggedIn(context.Background()))
}

func TestIsLoggedIn_NoCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCredentialRepository(ctrl)
	c := newTestClient(t, nil, repo)

	repo.EXPECT().Load(gomock.Any()).Return(models.Credential{}, store.ErrCredentialNotFound)

	assert.False(t, c.IsLoggedIn(context.Background()))
	_, err := c.Credential(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestIsLoggedIn_ExpiredWithoutRefresh(t *testing.T) {
	c := newTestClient(t, nil, nil)
	c.credential = models.Credential{AccessToken: "a", ExpiresAt: testNow.Add(-time.Second)}
	c.loaded = true

	assert.False(t, c.IsLoggedIn(context.Background()))
}

func TestUpdateToken_StillValid(t *testing.T) {
	p := newIDP(t, func(w http.ResponseWriter, _ url.Values) {
		t.Error("token endpoint must not be called")
	})
	c := newTestClient(t, p, nil)
	c.credential = models.Credential{AccessToken: "a", RefreshToken: "r", ExpiresAt: testNow.Add(time.Minute)}
	c.loaded = true

	token, err := c.UpdateToken(context.Background(), 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "a", token)
	assert.Zero(t, p.calls.Load())
}

func TestUpdateToken_Refreshes(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCredentialRepository(ctrl)

	fresh := signedToken(t, "jdoe", testNow.Add(10*time.Minute))
	p := newIDP(t, func(w http.ResponseWriter, form url.Values) {
		writeToken(w, http.StatusOK, map[string]any{"access_token": fresh, "expires_in": 600})
	})
	c := newTestClient(t, p, repo)
	c.credential = models.Credential{AccessToken: "old", RefreshToken: "r0", ExpiresAt: testNow.Add(10 * time.Second)}
	c.loaded = true

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cred models.Credential) error {
		assert.Equal(t, fresh, cred.AccessToken)
		// refresh token kept when the provider does not rotate it
		assert.Equal(t, "r0", cred.RefreshToken)
		return nil
	})

	token, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)

	form := <-p.forms
	assert.Equal(t, "refresh_token", form.Get("grant_type"))
	assert.Equal(t, "r0", form.Get("refresh_token"))
}

func TestUpdateToken_RefreshRejectedClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCredentialRepository(ctrl)

	p := newIDP(t, func(w http.ResponseWriter, _ url.Values) {
		writeToken(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
	})
	c := newTestClient(t, p, repo)
	c.credential = models.Credential{AccessToken: "old", RefreshToken: "r0", ExpiresAt: testNow.Add(-time.Minute)}
	c.loaded = true

	repo.EXPECT().Clear(gomock.Any()).Return(nil)

	_, err := c.UpdateToken(context.Background(), 30*time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, c.IsLoggedIn(context.Background()))
}

func TestUpdateToken_NoRefreshToken(t *testing.T) {
	c := newTestClient(t, nil, nil)
	c.credential = models.Credential{AccessToken: "old", ExpiresAt: testNow}
	c.loaded = true

	_, err := c.UpdateToken(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUpdateToken_ProviderDownKeepsSession(t *testing.T) {
	p := newIDP(t, func(w http.ResponseWriter, _ url.Values) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c := newTestClient(t, p, nil)
	c.credential = models.Credential{AccessToken: "old", RefreshToken: "r0", ExpiresAt: testNow}
	c.loaded = true

	_, err := c.UpdateToken(context.Background(), time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityProvider)
	assert.Equal(t, "r0", c.credential.RefreshToken)
}

func TestLogin_RedirectsToAuthorizationURL(t *testing.T) {
	c := newTestClient(t, nil, nil)

	var got string
	c.redirect = func(_ context.Context, authURL string) error {
		got = authURL
		return nil
	}

	require.NoError(t, c.Login(context.Background()))

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/realms/bo"+authPath, u.Path)
	assert.Equal(t, "backoffice", u.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:4200/", u.Query().Get("redirect_uri"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
}

func TestLogin_RedirectError(t *testing.T) {
	c := newTestClient(t, nil, nil)
	c.redirect = func(context.Context, string) error { return errors.New("no browser") }

	assert.EqualError(t, c.Login(context.Background()), "no browser")
}

func TestLogout_ClearsStoreAndCallsProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCredentialRepository(ctrl)

	p := newIDP(t, func(w http.ResponseWriter, _ url.Values) {})
	c := newTestClient(t, p, repo)
	c.credential = models.Credential{AccessToken: "a", RefreshToken: "r0", ExpiresAt: testNow.Add(time.Hour)}
	c.loaded = true

	repo.EXPECT().Clear(gomock.Any()).Return(nil)

	require.NoError(t, c.Logout(context.Background()))
	form := <-p.forms
	assert.Equal(t, "r0", form.Get("refresh_token"))
	assert.False(t, c.IsLoggedIn(context.Background()))
}

func TestLogout_ClearError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCredentialRepository(ctrl)
	c := newTestClient(t, nil, repo)
	c.loaded = true

	repo.EXPECT().Clear(gomock.Any()).Return(errors.New("locked"))

	err := c.Logout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}
