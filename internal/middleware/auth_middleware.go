package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sheikhgalib/academix/internal/app/authz"
	"github.com/sheikhgalib/academix/internal/app/models/dto"
	"github.com/sheikhgalib/academix/internal/pkg/apperrors"
	"github.com/sheikhgalib/academix/internal/pkg/auth"
	"github.com/sheikhgalib/academix/internal/session"
)

// SessionCookieName is the browser session cookie.
const SessionCookieName = "academix_session"

const principalKey = "principal"

// AuthMiddleware resolves the request principal and enforces the access policy
type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   *session.Store
	loader     *authz.PrincipalLoader
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, sessions *session.Store, loader *authz.PrincipalLoader, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
		loader:     loader,
		logger:     logger,
	}
}

// ResolvePrincipal establishes the request principal from the session cookie
// or a Bearer token. Requests without valid credentials, and requests for a
// disabled account, proceed anonymously; the policy gate decides what an
// anonymous request may reach.
func (m *AuthMiddleware) ResolvePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal := m.resolve(c); principal != nil && principal.Enabled {
			c.Set(principalKey, principal)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) *authz.Principal {
	ctx := c.Request.Context()

	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		if username, ok := m.sessions.Username(ctx, cookie); ok {
			principal, err := m.loader.Load(ctx, username)
			if err != nil {
				if !errors.Is(err, apperrors.ErrAccountNotFound) {
					m.logger.Error().Err(err).Msg("Failed to load principal for session")
				}
				return nil
			}
			return principal
		}
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Rejected bearer token")
		return nil
	}

	principal, err := m.loader.Load(ctx, claims.Username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			m.logger.Error().Err(err).Msg("Failed to load principal for token")
		}
		return nil
	}
	return principal
}

// PolicyGate evaluates the access policy before any handler runs.
func (m *AuthMiddleware) PolicyGate(policy *authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := PrincipalFromContext(c)

		decision := policy.Authorize(principal, c.Request.URL.Path, c.Request.Method)
		switch decision {
		case authz.Allow:
			c.Next()

		case authz.DenyRedirectLogin:
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()

		case authz.DenyForbidden:
			m.logger.Warn().
				Str("username", principal.Username).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("Access denied by policy")
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")))
				return
			}
			c.Redirect(http.StatusFound, "/access-denied")
			c.Abort()
		}
	}
}

// PrincipalFromContext returns the principal set for this request, if any.
func PrincipalFromContext(c *gin.Context) (*authz.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*authz.Principal)
	return principal, ok
}

// WantsJSON reports whether the client is an API consumer rather than a
// browser form. Bearer clients and JSON bodies get JSON; everything else
// gets the redirect flow.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
		return true
	}
	if strings.Contains(c.GetHeader("Content-Type"), "application/json") {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
