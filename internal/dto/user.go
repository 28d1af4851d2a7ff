package dto

import (
	"time"

	"github.com/yukikurage/items-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by sign-up and sign-in. Token is only present when the
// bearer transport is configured.
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token,omitempty"`
}

// UserResponse wraps the current user
type UserResponse struct {
	User UserDTO `json:"user"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
