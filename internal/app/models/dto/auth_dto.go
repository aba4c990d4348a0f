package dto

import "github.com/ecakir/campushub/internal/app/models"

// RegisterRequest represents a user registration payload
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName string  `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string  `json:"lastName" binding:"required,min=2,max=100"`
	Major     *string `json:"major,omitempty"`
	Year      *string `json:"year,omitempty"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse wraps the authenticated user's profile. The password hash
// is never serialized (excluded at the model level).
type AuthResponse struct {
	User *models.User `json:"user"`
}
