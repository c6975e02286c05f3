package dto

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// UserResponse response.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
