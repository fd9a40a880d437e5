package dto

// LoginRequest carries a login form submission
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest carries a registration form submission
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Role     string `json:"role" form:"role" binding:"required"`
}

// TokenResponse is returned to API clients after a successful login
type TokenResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType" example:"Bearer"`
	ExpiresIn   int      `json:"expiresIn" example:"3600"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
}

// LoginViewResponse is rendered for GET /login, carrying the optional
// error and logout messages
type LoginViewResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// DashboardResponse is rendered for the authenticated dashboard
type DashboardResponse struct {
	Username string `json:"username"`
}
