package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Password    string `json:"password"`
	KVKKConsent bool   `json:"kvkkConsent"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserProfile is the redacted, decrypted view of a user returned to its
// owner (and to admins).
type UserProfile struct {
	ID           uuid.UUID  `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Phone        string     `json:"mobileNumber"`
	Address      string     `json:"address"`
	Role         string     `json:"role"`
	AuthProvider string     `json:"authProvider"`
	AvatarURL    string     `json:"avatarUrl"`
	KVKKConsent  bool       `json:"kvkkConsent"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}
