package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/handler"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(mockAuth *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	h := handler.NewAuthHandler(mockAuth)
	h.RegisterRoutes(r.Group("/auth"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		r := setupAuthRouter(mockAuth)

		mockAuth.On("Register", mock.Anything, "alice", "supersecret", "alice@example.com").
			Return(&models.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil).Once()

		w := postJSON(t, r, "/auth/register", dto.RegisterRequest{
			Username: "alice", Password: "supersecret", Email: "alice@example.com",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "alice", response["username"])
	})

	t.Run("NameTaken", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		r := setupAuthRouter(mockAuth)

		mockAuth.On("Register", mock.Anything, "alice", "supersecret", "alice@example.com").
			Return(nil, service.ErrNameInUse).Once()

		w := postJSON(t, r, "/auth/register", dto.RegisterRequest{
			Username: "alice", Password: "supersecret", Email: "alice@example.com",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		r := setupAuthRouter(mockAuth)

		w := postJSON(t, r, "/auth/register", dto.RegisterRequest{
			Username: "alice", Password: "short", Email: "alice@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockAuth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		r := setupAuthRouter(mockAuth)

		mockAuth.On("Login", mock.Anything, "alice", "supersecret").
			Return("access", "refresh", &models.User{ID: 1, Username: "alice"}, nil).Once()

		w := postJSON(t, r, "/auth/login", dto.LoginRequest{Username: "alice", Password: "supersecret"})

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.AuthResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "access", response.AccessToken)
		assert.Equal(t, "refresh", response.RefreshToken)
		assert.Equal(t, int64(1), response.UserID)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		r := setupAuthRouter(mockAuth)

		mockAuth.On("Login", mock.Anything, "alice", "wrong").
			Return("", "", nil, service.ErrInvalidCredentials).Once()

		w := postJSON(t, r, "/auth/login", dto.LoginRequest{Username: "alice", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("RotatesBothTokens", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		r := setupAuthRouter(mockAuth)

		mockAuth.On("RefreshAccessToken", mock.Anything, "old-refresh").
			Return("new-access", "new-refresh", nil).Once()

		w := postJSON(t, r, "/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "old-refresh"})

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.RefreshResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "new-access", response.AccessToken)
		assert.Equal(t, "new-refresh", response.RefreshToken)
	})

	t.Run("RevokedToken", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		r := setupAuthRouter(mockAuth)

		mockAuth.On("RefreshAccessToken", mock.Anything, "revoked").
			Return("", "", service.ErrInvalidToken).Once()

		w := postJSON(t, r, "/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "revoked"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_RevokeToken(t *testing.T) {
	t.Run("AlwaysReportsSuccess", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		r := setupAuthRouter(mockAuth)

		mockAuth.On("RevokeToken", "whatever").Return(service.ErrInvalidToken).Once()

		w := postJSON(t, r, "/auth/revoke", dto.RevokeTokenRequest{RefreshToken: "whatever"})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
