package users

import (
	"context"
	"errors"

	"github.com/Sum1ght/schand/pkg/db/models"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

type userStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, filter Filter, params pagination.Params) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

// Service exposes account management.
type Service interface {
	Get(ctx context.Context, caller types.Caller, id int64) (UserDTO, error)
	List(ctx context.Context, caller types.Caller, filter Filter, params pagination.Params) (pagination.Page[UserDTO], error)
	Update(ctx context.Context, caller types.Caller, input UpdateUserInput) (UserDTO, error)
	Delete(ctx context.Context, caller types.Caller, id int64) error
	DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error
}

type service struct {
	store userStore
}

// NewService builds a user service backed by the provided store.
func NewService(store userStore) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user store is required")
	}
	return &service{store: store}, nil
}

// Get returns one account. Non-admin callers may only read themselves.
func (s *service) Get(ctx context.Context, caller types.Caller, id int64) (UserDTO, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "account belongs to another user")
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return UserDTO{}, err
	}
	return ToDTO(*user), nil
}

// List returns the account page. Admin only.
func (s *service) List(ctx context.Context, caller types.Caller, filter Filter, params pagination.Params) (pagination.Page[UserDTO], error) {
	if !caller.IsAdmin() {
		return pagination.Page[UserDTO]{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	rows, total, err := s.store.List(ctx, filter, params)
	if err != nil {
		return pagination.Page[UserDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	items := make([]UserDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToDTO(row))
	}
	return pagination.NewPage(items, total, params), nil
}

// Update edits profile fields. Non-admin callers may only edit themselves
// and can never change roles.
func (s *service) Update(ctx context.Context, caller types.Caller, input UpdateUserInput) (UserDTO, error) {
	if !caller.IsAdmin() && caller.ID != input.ID {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "account belongs to another user")
	}
	user, err := s.loadUser(ctx, input.ID)
	if err != nil {
		return UserDTO{}, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Email != nil {
		user.Email = input.Email
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}
	if input.Role != nil {
		if !caller.IsAdmin() {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "only admins may change roles")
		}
		if !input.Role.IsValid() {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		user.Role = *input.Role
	}

	if err := s.store.Update(ctx, user); err != nil {
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return ToDTO(*user), nil
}

// Delete removes an account. Admin only, and never the caller's own.
func (s *service) Delete(ctx context.Context, caller types.Caller, id int64) error {
	if !caller.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if caller.ID == id {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete the active account")
	}
	if _, err := s.loadUser(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

// DeleteBatch removes a set of accounts. Admin only.
func (s *service) DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error {
	if !caller.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "ids are required")
	}
	for _, id := range ids {
		if id == caller.ID {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete the active account")
		}
	}
	if err := s.store.DeleteBatch(ctx, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete users")
	}
	return nil
}

func (s *service) loadUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
