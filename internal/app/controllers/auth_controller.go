package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sheikhgalib/academix/internal/app/models"
	"github.com/sheikhgalib/academix/internal/app/models/dto"
	"github.com/sheikhgalib/academix/internal/app/services"
	"github.com/sheikhgalib/academix/internal/middleware"
	"github.com/sheikhgalib/academix/internal/pkg/auth"
	"github.com/sheikhgalib/academix/internal/session"
)

// AuthController handles login, logout and registration
type AuthController struct {
	authService services.AuthService
	jwtService  *auth.JWTService
	sessions    *session.Store
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, jwtService *auth.JWTService, sessions *session.Store, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
		sessions:    sessions,
		logger:      logger,
	}
}

// ShowLogin renders the login view. The error, logout and registered query
// flags select the message shown above the form.
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	view := dto.LoginViewResponse{}

	if _, ok := ctx.GetQuery("error"); ok {
		view.Error = "Invalid username or password"
	}
	if _, ok := ctx.GetQuery("logout"); ok {
		view.Message = "You have been logged out successfully"
	}
	if _, ok := ctx.GetQuery("registered"); ok {
		view.Message = "Registration successful. Please log in."
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      view,
		Timestamp: time.Now(),
	})
}

// Login verifies the submitted credentials. Browser clients get a session
// cookie and a redirect; API clients get a bearer token. Every failure mode
// produces the same response so usernames cannot be probed.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.loginFailure(ctx)
		return
	}

	principal, err := c.authService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		c.loginFailure(ctx)
		return
	}

	sessionID, err := c.sessions.Create(ctx, principal.Username)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to create session")
		middleware.HandleAPIError(ctx, err)
		return
	}

	maxAge := int(c.sessions.TTL().Seconds())
	ctx.SetCookie(middleware.SessionCookieName, sessionID, maxAge, "/", "", false, true)

	if !middleware.WantsJSON(ctx) {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}

	account := &models.Account{
		ID:       principal.AccountID,
		Username: principal.Username,
		Roles:    principal.Authorities,
	}
	token, expiresIn, err := c.jwtService.GenerateToken(account)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to generate token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
			Username:    principal.Username,
			Roles:       principal.Authorities,
		},
		Timestamp: time.Now(),
	})
}

func (c *AuthController) loginFailure(ctx *gin.Context) {
	if middleware.WantsJSON(ctx) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")))
		return
	}
	ctx.Redirect(http.StatusFound, "/login?error=true")
}

// ShowRegister renders the registration view
func (c *AuthController) ShowRegister(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"roles": []string{string(models.RoleStudent), string(models.RoleTeacher), string(models.RoleAdmin)},
		},
		Timestamp: time.Now(),
	})
}

// Register provisions a new account from the registration form
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	account, err := c.authService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !middleware.WantsJSON(ctx) {
		ctx.Redirect(http.StatusFound, "/login?registered=true")
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      account,
		Message:   "Registration successful",
		Timestamp: time.Now(),
	})
}

// Logout invalidates the browser session and clears the cookie
func (c *AuthController) Logout(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(middleware.SessionCookieName); err == nil && cookie != "" {
		if err := c.sessions.Delete(ctx, cookie); err != nil {
			c.logger.Error().Err(err).Msg("Failed to delete session")
		}
	}
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	if !middleware.WantsJSON(ctx) {
		ctx.Redirect(http.StatusFound, "/login?logout=true")
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Logged out successfully"},
		Timestamp: time.Now(),
	})
}

// Dashboard renders the landing view for a signed-in principal
func (c *AuthController) Dashboard(ctx *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		// The policy gate keeps anonymous requests out of here.
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.DashboardResponse{Username: principal.Username},
		Timestamp: time.Now(),
	})
}

// AccessDenied renders the page shown after a forbidden redirect
func (c *AuthController) AccessDenied(ctx *gin.Context) {
	ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not have permission to access this page")))
}
