package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/service"
	mock_service "github.com/manara-transit/backend/internal/service/mock"
	"github.com/manara-transit/backend/pkg/auth"
	"github.com/manara-transit/backend/pkg/validator"
)

type testAPI struct {
	router   *gin.Engine
	users    *mock_service.Users
	profiles *mock_service.Profiles
	trips    *mock_service.Trips
	routes   *mock_service.Routes
	userID   uuid.UUID
	token    string
	tokens   *auth.Manager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	manager, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		SigningKey:      "test-signing-key",
	})
	require.NoError(t, err)

	api := &testAPI{
		users:    new(mock_service.Users),
		profiles: new(mock_service.Profiles),
		trips:    new(mock_service.Trips),
		routes:   new(mock_service.Routes),
		userID:   uuid.MustParse("0192a0b4-6f1e-7c3a-9d2b-1f4e5a6b7c8d"),
		tokens:   manager,
	}

	api.token, _, err = manager.NewJWT(auth.Subject{UserID: api.userID, Email: "alice@example.com", IsVerified: true})
	require.NoError(t, err)

	services := &service.Services{
		Users:    api.users,
		Profiles: api.profiles,
		Trips:    api.trips,
		Routes:   api.routes,
	}

	api.router = gin.New()
	NewHandler(services, manager, &config.Config{}).Init(api.router.Group("/api"))

	t.Cleanup(func() {
		api.users.AssertExpectations(t)
		api.profiles.AssertExpectations(t)
		api.trips.AssertExpectations(t)
		api.routes.AssertExpectations(t)
	})

	return api
}

// do sends body as JSON. An empty token means no Authorization header.
func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHome(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to the API Home Page!", w.Body.String())
}

func TestUserIdentityMiddleware(t *testing.T) {
	api := newTestAPI(t)

	expired, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL:  -time.Minute,
		RefreshTokenTTL: time.Hour,
		SigningKey:      "test-signing-key",
	})
	require.NoError(t, err)
	expiredToken, _, err := expired.NewJWT(auth.Subject{UserID: api.userID})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token " + api.token},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			api.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
