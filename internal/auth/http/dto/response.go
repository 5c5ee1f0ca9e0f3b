package dto

import (
	"time"

	userDomain "github.com/meridianfi/banking/internal/user/domain"
)

// UserResponse is the public representation of a user. The password hash and
// the encrypted SSN never leave the server.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	DateOfBirth string    `json:"date_of_birth"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zip_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse maps a user domain entity to its public representation.
func NewUserResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		DateOfBirth: user.DateOfBirth,
		Address:     user.Address,
		City:        user.City,
		State:       user.State,
		ZipCode:     user.ZipCode,
		CreatedAt:   user.CreatedAt,
	}
}

// LoginResponse carries the bearer token issued at login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
