package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sum1ght/schand/internal/users"
	pkgauth "github.com/Sum1ght/schand/pkg/auth"
	"github.com/Sum1ght/schand/pkg/config"
	pkgdb "github.com/Sum1ght/schand/pkg/db"
	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/security"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

const (
	minPasswordLen       = 6
	usernameUniqueIndex  = "users_username_key"
	minUsernameLen       = 3
	invalidCredentialMsg = "invalid username or password"
)

type userStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	Users    userStore
	JWT      config.JWTConfig
	Password config.PasswordConfig
}

// Service exposes registration, login and credential rotation.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (users.UserDTO, error)
	Login(ctx context.Context, input LoginInput) (LoginDTO, error)
	UpdatePassword(ctx context.Context, caller types.Caller, input UpdatePasswordInput) error
}

type service struct {
	users    userStore
	jwt      config.JWTConfig
	password config.PasswordConfig
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user store is required")
	}
	if params.JWT.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jwt secret is required")
	}
	return &service{
		users:    params.Users,
		jwt:      params.JWT,
		password: params.Password,
	}, nil
}

// Register opens a user-role account. Username collisions report a conflict
// whether caught up front or by the unique index on commit.
func (s *service) Register(ctx context.Context, input RegisterInput) (users.UserDTO, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < minUsernameLen {
		return users.UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "username is too short")
	}
	if len(input.Password) < minPasswordLen {
		return users.UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "password is too short")
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return users.UserDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return users.UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return users.UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = username
	}
	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Phone:        input.Phone,
		Email:        input.Email,
		Role:         enums.RoleUser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if pkgdb.IsUniqueViolation(err, usernameUniqueIndex) {
			return users.UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username is already taken")
		}
		return users.UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return users.ToDTO(user), nil
}

// Login verifies the credentials and mints an access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, input LoginInput) (LoginDTO, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return LoginDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialMsg)
		}
		return LoginDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return LoginDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return LoginDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialMsg)
	}

	token, err := pkgauth.MintAccessToken(s.jwt, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return LoginDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	return LoginDTO{Token: token, User: users.ToDTO(*user)}, nil
}

// UpdatePassword rotates the caller's credential after checking the old one.
func (s *service) UpdatePassword(ctx context.Context, caller types.Caller, input UpdatePasswordInput) error {
	if len(input.NewPassword) < minPasswordLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "new password is too short")
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.OldPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "old password does not match")
	}

	hash, err := security.HashPassword(input.NewPassword, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store password")
	}
	return nil
}
