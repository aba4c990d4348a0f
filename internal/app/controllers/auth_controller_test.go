package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/middleware"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
)

const testCookie = "session_id"

// stubAuthService backs the controller with a single known account
type stubAuthService struct {
	user    *models.User
	session *models.Session
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{
		user: &models.User{
			ID:        1,
			Email:     "ada@campus.edu",
			Password:  "$2a$10$secret-hash",
			FirstName: "Ada",
			LastName:  "Lovelace",
		},
		session: &models.Session{
			Token:     "11111111-2222-3333-4444-555555555555",
			UserID:    1,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *models.Session, error) {
	if req.Email == s.user.Email {
		return nil, nil, apperrors.ErrEmailAlreadyExists
	}
	return s.user, s.session, nil
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *models.Session, error) {
	if req.Email != s.user.Email || req.Password != "secret123" {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	return s.user, s.session, nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return nil
}

func (s *stubAuthService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	if token != s.session.Token {
		return nil, apperrors.ErrSessionNotFound
	}
	return s.user, nil
}

func newAuthTestRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := NewAuthController(svc, testCookie, time.Hour, false)
	authMw := middleware.NewAuthMiddleware(svc, testCookie)

	router.POST("/api/auth/register", controller.Register)
	router.POST("/api/auth/login", controller.Login)
	router.POST("/api/auth/logout", controller.Logout)
	router.GET("/api/auth/me", authMw.SessionAuth(), controller.Me)
	return router
}

func TestAuthController_LoginSetsSessionCookie(t *testing.T) {
	router := newAuthTestRouter(newStubAuthService())

	body := `{"email":"ada@campus.edu","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// The hashed password must never appear in the payload
	assert.NotContains(t, w.Body.String(), "secret-hash")
	assert.NotContains(t, w.Body.String(), "password")

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestAuthController_LoginWrongPassword(t *testing.T) {
	router := newAuthTestRouter(newStubAuthService())

	body := `{"email":"ada@campus.edu","password":"wrongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthController_RegisterValidation(t *testing.T) {
	router := newAuthTestRouter(newStubAuthService())

	// Missing password and names
	body := `{"email":"new@campus.edu"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_RegisterDuplicateEmail(t *testing.T) {
	router := newAuthTestRouter(newStubAuthService())

	body := `{"email":"ada@campus.edu","password":"secret123","firstName":"Ada","lastName":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthController_MeRequiresSession(t *testing.T) {
	router := newAuthTestRouter(newStubAuthService())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "11111111-2222-3333-4444-555555555555"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@campus.edu")
}

func TestAuthController_MeRejectsUnknownToken(t *testing.T) {
	router := newAuthTestRouter(newStubAuthService())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "not-a-session"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_LogoutClearsCookie(t *testing.T) {
	router := newAuthTestRouter(newStubAuthService())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "11111111-2222-3333-4444-555555555555"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
