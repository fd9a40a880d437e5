package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sheikhgalib/academix/internal/app/authz"
	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/app/models/dto"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
)

// stubAuthService scripts the outcomes of Register and Authenticate.
type stubAuthService struct {
	registerErr     error
	registered      *models.Account
	authenticateErr error
	principal       *authz.Principal
}

func (s *stubAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*models.Account, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registered, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, _, _ string) (*authz.Principal, error) {
	if s.authenticateErr != nil {
		return nil, s.authenticateErr
	}
	return s.principal, nil
}

func newAuthRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewAuthController(svc, nil, nil, zerolog.Nop())

	router := gin.New()
	router.GET("/login", controller.ShowLogin)
	router.POST("/login", controller.Login)
	router.POST("/register", controller.Register)
	router.POST("/logout", controller.Logout)
	return router
}

func loginView(t *testing.T, body []byte) dto.LoginViewResponse {
	t.Helper()
	var resp struct {
		Data dto.LoginViewResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode login view: %v", err)
	}
	return resp.Data
}

func TestShowLoginMessages(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	cases := []struct {
		name        string
		query       string
		wantError   string
		wantMessage string
	}{
		{"plain", "", "", ""},
		{"after failure", "?error=true", "Invalid username or password", ""},
		{"after logout", "?logout=true", "", "You have been logged out successfully"},
		{"after registration", "?registered=true", "", "Registration successful. Please log in."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/login"+tc.query, nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			view := loginView(t, w.Body.Bytes())
			if view.Error != tc.wantError {
				t.Errorf("expected error %q, got %q", tc.wantError, view.Error)
			}
			if view.Message != tc.wantMessage {
				t.Errorf("expected message %q, got %q", tc.wantMessage, view.Message)
			}
		})
	}
}

func TestLoginFailureRedirectsBrowser(t *testing.T) {
	router := newAuthRouter(&stubAuthService{authenticateErr: apperrors.ErrInvalidCredentials})

	form := url.Values{"username": {"nobody"}, "password": {"wrong"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?error=true" {
		t.Errorf("expected redirect to /login?error=true, got %q", loc)
	}
}

func TestLoginFailureReturns401ForAPIClient(t *testing.T) {
	router := newAuthRouter(&stubAuthService{authenticateErr: apperrors.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"nobody","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginMissingFieldsLooksLikeBadCredentials(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	form := url.Values{"username": {"someone"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?error=true" {
		t.Errorf("expected redirect to /login?error=true, got %q", loc)
	}
}

func registrationForm() url.Values {
	return url.Values{
		"username": {"newuser"},
		"email":    {"newuser@example.com"},
		"password": {"secret123"},
		"role":     {"student"},
	}
}

func TestRegisterBrowserRedirectsToLogin(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		registered: &models.Account{ID: 1, Username: "newuser", Enabled: true},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(registrationForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?registered=true" {
		t.Errorf("expected redirect to /login?registered=true, got %q", loc)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router := newAuthRouter(&stubAuthService{registerErr: apperrors.ErrUsernameAlreadyExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(registrationForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Username already exists") {
		t.Errorf("expected the username conflict message, got %s", w.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newAuthRouter(&stubAuthService{registerErr: apperrors.ErrEmailAlreadyExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(registrationForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email already exists") {
		t.Errorf("expected the email conflict message, got %s", w.Body.String())
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	router := newAuthRouter(&stubAuthService{registerErr: apperrors.ErrInvalidRole})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(registrationForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRegisterShortPasswordRejectedByBinding(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	form := registrationForm()
	form.Set("password", "abc")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLogoutWithoutSessionRedirects(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?logout=true" {
		t.Errorf("expected redirect to /login?logout=true, got %q", loc)
	}
}
