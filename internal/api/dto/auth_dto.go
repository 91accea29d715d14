package dto

import "time"

// CredentialsRequest is the payload of register and authenticate.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=50,email"`
	Password string `json:"password" validate:"required,min=8,max=30"`
}

// RegisterResponse echoes the stored identifier.
type RegisterResponse struct {
	Email string `json:"email"`
}

// AuthResponse carries an issued bearer token.
type AuthResponse struct {
	Token     string    `json:"jwtToken"`
	ExpiresAt time.Time `json:"expires_at"`
}
