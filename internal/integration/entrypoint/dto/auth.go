// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/technest/admin-dashboard/internal/domain/entity"
)

// LoginRequest represents the request body for admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Admin       AdminResponse `json:"admin"`
}

// AdminResponse represents the signed-in administrator in API responses.
type AdminResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToAdminResponse converts an identity to an AdminResponse DTO.
func ToAdminResponse(identity entity.Identity) AdminResponse {
	return AdminResponse{
		ID:       identity.UserID,
		Email:    identity.Email,
		Name:     identity.Name,
		Verified: identity.Verified,
	}
}
