package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sheikhgalib/academix/internal/app/authz"
	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
	"github.com/sheikhgalib/academix/internal/pkg/auth"
)

type fakeAccountSource struct {
	accounts map[string]*models.Account
}

func (f *fakeAccountSource) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	if a, ok := f.accounts[username]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAccountNotFound
}

func newGateRouter(principal *authz.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewAuthMiddleware(nil, nil, nil, zerolog.Nop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if principal != nil {
			c.Set(principalKey, principal)
		}
		c.Next()
	})
	router.Use(mw.PolicyGate(authz.DefaultPolicy()))

	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	router.GET("/student/list", ok)
	router.POST("/teacher/create", ok)
	router.GET("/login", ok)
	return router
}

func studentPrincipal() *authz.Principal {
	return &authz.Principal{
		AccountID:   7,
		Username:    "student1",
		Enabled:     true,
		Authorities: []string{models.RoleStudent.Tag()},
	}
}

func TestPolicyGateAnonymousBrowserRedirectsToLogin(t *testing.T) {
	router := newGateRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/student/list", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestPolicyGateAnonymousAPIClientGets401(t *testing.T) {
	router := newGateRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/student/list", nil)
	req.Header.Set("Accept", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPolicyGateForbiddenBrowserRedirects(t *testing.T) {
	router := newGateRouter(studentPrincipal())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/teacher/create", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/access-denied" {
		t.Errorf("expected redirect to /access-denied, got %q", loc)
	}
}

func TestPolicyGateForbiddenAPIClientGets403(t *testing.T) {
	router := newGateRouter(studentPrincipal())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/teacher/create", nil)
	req.Header.Set("Accept", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestPolicyGateAllowsPermittedRequest(t *testing.T) {
	router := newGateRouter(studentPrincipal())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/student/list", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPolicyGateAllowsPublicPath(t *testing.T) {
	router := newGateRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func newResolveRouter(t *testing.T, source *fakeAccountSource, jwtService *auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loader := authz.NewPrincipalLoader(source)
	mw := NewAuthMiddleware(jwtService, nil, loader, zerolog.Nop())

	router := gin.New()
	router.Use(mw.ResolvePrincipal())
	router.GET("/whoami", func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, principal.Username)
	})
	return router
}

func TestResolvePrincipalFromBearerToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "academix.test",
	})
	source := &fakeAccountSource{accounts: map[string]*models.Account{
		"teacher1": {
			ID:       3,
			Username: "teacher1",
			Roles:    []string{models.RoleTeacher.Tag()},
			Enabled:  true,
		},
	}}
	router := newResolveRouter(t, source, jwtService)

	token, _, err := jwtService.GenerateToken(source.accounts["teacher1"])
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Body.String() != "teacher1" {
		t.Errorf("expected principal teacher1, got %q", w.Body.String())
	}
}

func TestResolvePrincipalIgnoresDisabledAccount(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
	})
	account := &models.Account{
		ID:       4,
		Username: "suspended",
		Roles:    []string{models.RoleAdmin.Tag()},
		Enabled:  false,
	}
	source := &fakeAccountSource{accounts: map[string]*models.Account{"suspended": account}}
	router := newResolveRouter(t, source, jwtService)

	token, _, err := jwtService.GenerateToken(account)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Body.String() != "anonymous" {
		t.Errorf("disabled account must resolve as anonymous, got %q", w.Body.String())
	}
}

func TestResolvePrincipalWithoutCredentials(t *testing.T) {
	router := newResolveRouter(t, &fakeAccountSource{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	if w.Body.String() != "anonymous" {
		t.Errorf("expected anonymous, got %q", w.Body.String())
	}
}
