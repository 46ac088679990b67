package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/b2b-transaction-platform/internal/api/service"
	"github.com/b2b-transaction-platform/internal/domain/user"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, fullName, companyName string) (*user.User, string, error) {
	args := m.Called(ctx, email, password, fullName, companyName)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*user.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*user.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func newAuthRouter(mockService *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	h := NewAuthHandler(logger, mockService)

	router := gin.New()
	group := router.Group("/api/v1/auth")
	group.POST("/register", h.Register)
	group.POST("/login", h.Login)
	group.POST("/forgot-password", h.ForgotPassword)
	group.POST("/reset-password", h.ResetPassword)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		registered := user.NewUser("jane@acme.example", "hash", "Jane Doe", "Acme")
		mockService.On("Register", mock.Anything, "jane@acme.example", "s3cret-password", "Jane Doe", "Acme").
			Return(registered, "signed.jwt.token", nil).Once()

		router := newAuthRouter(mockService)
		rr := postJSON(router, "/api/v1/auth/register",
			`{"email":"jane@acme.example","password":"s3cret-password","full_name":"Jane Doe","company_name":"Acme"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		data, ok := response["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "signed.jwt.token", data["token"])

		userField, ok := data["user"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "jane@acme.example", userField["email"])
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateEmailConflict", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", mock.Anything, "jane@acme.example", "s3cret-password", "Jane Doe", "Acme").
			Return(nil, "", user.ErrDuplicateEmail{Email: "jane@acme.example"}).Once()

		router := newAuthRouter(mockService)
		rr := postJSON(router, "/api/v1/auth/register",
			`{"email":"jane@acme.example","password":"s3cret-password","full_name":"Jane Doe","company_name":"Acme"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "CONFLICT")
	})

	t.Run("ShortPasswordRejectedByBinding", func(t *testing.T) {
		mockService := new(MockAuthService)
		router := newAuthRouter(mockService)
		rr := postJSON(router, "/api/v1/auth/register",
			`{"email":"jane@acme.example","password":"short","full_name":"Jane Doe","company_name":"Acme"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		existing := user.NewUser("jane@acme.example", "hash", "Jane Doe", "Acme")
		mockService.On("Login", mock.Anything, "jane@acme.example", "s3cret-password").
			Return(existing, "signed.jwt.token", nil).Once()

		router := newAuthRouter(mockService)
		rr := postJSON(router, "/api/v1/auth/login",
			`{"email":"jane@acme.example","password":"s3cret-password"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "signed.jwt.token")
	})

	t.Run("BadCredentialsUnauthorized", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, "jane@acme.example", "wrong").
			Return(nil, "", service.ErrInvalidCredentials).Once()

		router := newAuthRouter(mockService)
		rr := postJSON(router, "/api/v1/auth/login",
			`{"email":"jane@acme.example","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	mockService := new(MockAuthService)
	mockService.On("ForgotPassword", mock.Anything, "jane@acme.example").Return(nil).Once()

	router := newAuthRouter(mockService)
	rr := postJSON(router, "/api/v1/auth/forgot-password", `{"email":"jane@acme.example"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("ResetPassword", mock.Anything, "reset-token-123", "brand-new-password").
			Return(nil).Once()

		router := newAuthRouter(mockService)
		rr := postJSON(router, "/api/v1/auth/reset-password",
			`{"token":"reset-token-123","new_password":"brand-new-password"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("ResetPassword", mock.Anything, "stale-token", "brand-new-password").
			Return(service.ErrInvalidResetToken).Once()

		router := newAuthRouter(mockService)
		rr := postJSON(router, "/api/v1/auth/reset-password",
			`{"token":"stale-token","new_password":"brand-new-password"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
