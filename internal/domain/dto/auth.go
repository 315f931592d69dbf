// Package dto defines Data Transfer Objects for authentication.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to authenticate an editorial staff account
// @Example {"email": "editor@example.com", "password": "password123"}
type LoginRequest struct {
	// Email is the account's email address.
	Email string `json:"email" binding:"required,email" example:"editor@example.com"`
	// Password is the account's password.
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// RefreshToken is the JWT refresh token.
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// User contains the authenticated account information.
	User UserResponse `json:"user"`
} // @name LoginResponse

// TokenPair represents access and refresh tokens (moved from service to avoid import cycles).
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims represents JWT claims (moved from service to avoid import cycles).
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Roles  []string           `json:"roles"`
}

// UserResponse represents account information in API responses.
type UserResponse struct {
	// Email is the account's email address.
	Email string `json:"email" example:"editor@example.com"`
	// Name is the account holder's full name.
	Name string `json:"name,omitempty" example:"Jordan Oyelaran"`
} // @name UserResponse

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{
			Field:   "email",
			Message: "email is required",
		}
	}
	if len(r.Password) < 6 {
		return &ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		}
	}
	return nil
}
