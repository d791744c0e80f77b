package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// MagicLinkRequest asks for a passwordless sign-in link, sent by mail. The
// invite code ties the link back to the invite flow that requested it.
type MagicLinkRequest struct {
	Email      string `json:"email"`
	InviteCode string `json:"invite_code"`
}

// MagicLoginRequest exchanges a single-use token from a magic link for a
// session.
type MagicLoginRequest struct {
	Token string `json:"token"`
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	HasPassword bool      `json:"has_password"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
