package auth

import "github.com/dropDatabas3/inkboard/internal/users"

// RegisterRequest represents the request body for POST /api/auth/register.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest represents the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	User    users.User `json:"user"`
	Token   string     `json:"token"`
}

// MeResponse is the response for GET /api/auth/me.
type MeResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *users.User `json:"user,omitempty"`
}

// LogoutResponse acknowledges a logout.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CookieConfig controls the session cookie written by register/login.
type CookieConfig struct {
	Name     string // default "auth-token"
	Secure   bool
	SameSite string // "Lax", "Strict", "None"
	MaxAge   int    // seconds
}
