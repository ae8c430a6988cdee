package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/services"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupAuthHandler() (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService("test-secret", "test-issuer", time.Hour, mockRepo)
	authHandler := NewAuthHandler(services.NewAuthService(mockRepo, tokens))

	router := gin.New()
	authHandler.RegisterRoutes(router.Group(""))

	return router, mockRepo
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: Should return 201 and created user (No Password)", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()

		payload := map[string]string{
			"email":    "api_test@kanso.app",
			"password": "PasswordSuperSegreta1!",
		}
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		w := postJSON(router, "/auth/register", payload)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response userResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, payload["email"], response.Email)
		assert.NotEmpty(t, response.ID)
		assert.NotContains(t, w.Body.String(), "password")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: 400 on malformed payload", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()

		w := postJSON(router, "/auth/register", map[string]string{"email": "not-an-email", "password": "short"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Fail: 409 when email already exists", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		w := postJSON(router, "/auth/register", map[string]string{"email": "dup@kanso.app", "password": "Password123!"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already exists")
	})

	t.Run("Fail: 500 on database error", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		w := postJSON(router, "/auth/register", map[string]string{"email": "err@kanso.app", "password": "Password123!"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success: returns a token", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()

		user, err := domain.NewUser("login@kanso.app", "Password123!")
		require.NoError(t, err)
		mockRepo.On("GetByEmail", mock.Anything, "login@kanso.app").Return(user, nil)

		w := postJSON(router, "/auth/login", map[string]string{"email": "login@kanso.app", "password": "Password123!"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp tokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("Fail: 401 on wrong password", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()

		user, err := domain.NewUser("login@kanso.app", "Password123!")
		require.NoError(t, err)
		mockRepo.On("GetByEmail", mock.Anything, "login@kanso.app").Return(user, nil)

		w := postJSON(router, "/auth/login", map[string]string{"email": "login@kanso.app", "password": "WrongPassword!"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: 401 on unknown email", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()

		mockRepo.On("GetByEmail", mock.Anything, "ghost@kanso.app").Return(nil, domain.ErrUserNotFound)

		w := postJSON(router, "/auth/login", map[string]string{"email": "ghost@kanso.app", "password": "Password123!"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})
}
