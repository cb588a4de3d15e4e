package auth

import "github.com/Sum1ght/schand/internal/users"

// RegisterInput is the payload for opening a new account.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Phone    *string
	Email    *string
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

// LoginDTO is returned on a successful login.
type LoginDTO struct {
	Token string        `json:"token"`
	User  users.UserDTO `json:"user"`
}

// UpdatePasswordInput carries a credential rotation request.
type UpdatePasswordInput struct {
	OldPassword string
	NewPassword string
}
