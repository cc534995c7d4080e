package model

import "time"

// Account represents a registered user in the database.
// Emails are compared as given (case-sensitive); the accounts table enforces
// uniqueness with a binary-collated unique index.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response with a JWT token and
// the account's public view.
type AuthResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

// AccountResponse represents account data safe for API responses.
// The password hash never appears here.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicView returns the API-safe projection of an account.
func (a *Account) PublicView() AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}
