package addresses

import (
	"context"
	"errors"
	"strings"

	"github.com/Sum1ght/schand/pkg/db/models"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

// AddressDTO is a saved delivery address.
type AddressDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Consignee string `json:"consignee"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// CreateAddressInput is the payload for saving a new address. The owner is
// always the caller.
type CreateAddressInput struct {
	Consignee string
	Address   string
	Phone     string
}

// UpdateAddressInput carries a partial address edit.
type UpdateAddressInput struct {
	ID        int64
	Consignee *string
	Address   *string
	Phone     *string
}

type addressStore interface {
	FindByID(ctx context.Context, id int64) (*models.Address, error)
	List(ctx context.Context, userID int64, params pagination.Params) ([]models.Address, int64, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id int64) error
}

// Service exposes address book management.
type Service interface {
	Get(ctx context.Context, caller types.Caller, id int64) (AddressDTO, error)
	List(ctx context.Context, caller types.Caller, params pagination.Params) (pagination.Page[AddressDTO], error)
	Create(ctx context.Context, caller types.Caller, input CreateAddressInput) (AddressDTO, error)
	Update(ctx context.Context, caller types.Caller, input UpdateAddressInput) (AddressDTO, error)
	Delete(ctx context.Context, caller types.Caller, id int64) error
	DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error
}

type service struct {
	store addressStore
}

// NewService builds an address service backed by the provided store.
func NewService(store addressStore) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address store is required")
	}
	return &service{store: store}, nil
}

// Get returns one address. Non-admin callers may only read their own.
func (s *service) Get(ctx context.Context, caller types.Caller, id int64) (AddressDTO, error) {
	address, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return AddressDTO{}, err
	}
	return toDTO(*address), nil
}

// List returns the caller's address book. Admins see every address.
func (s *service) List(ctx context.Context, caller types.Caller, params pagination.Params) (pagination.Page[AddressDTO], error) {
	owner := caller.ID
	if caller.IsAdmin() {
		owner = 0
	}
	rows, total, err := s.store.List(ctx, owner, params)
	if err != nil {
		return pagination.Page[AddressDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	items := make([]AddressDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDTO(row))
	}
	return pagination.NewPage(items, total, params), nil
}

// Create saves a new address owned by the caller.
func (s *service) Create(ctx context.Context, caller types.Caller, input CreateAddressInput) (AddressDTO, error) {
	if strings.TrimSpace(input.Consignee) == "" || strings.TrimSpace(input.Address) == "" || strings.TrimSpace(input.Phone) == "" {
		return AddressDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "consignee, address and phone are required")
	}
	address := models.Address{
		UserID:    caller.ID,
		Consignee: strings.TrimSpace(input.Consignee),
		Address:   strings.TrimSpace(input.Address),
		Phone:     strings.TrimSpace(input.Phone),
	}
	if err := s.store.Create(ctx, &address); err != nil {
		return AddressDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	return toDTO(address), nil
}

// Update applies a partial edit to an owned address.
func (s *service) Update(ctx context.Context, caller types.Caller, input UpdateAddressInput) (AddressDTO, error) {
	address, err := s.loadOwned(ctx, caller, input.ID)
	if err != nil {
		return AddressDTO{}, err
	}
	if input.Consignee != nil {
		address.Consignee = strings.TrimSpace(*input.Consignee)
	}
	if input.Address != nil {
		address.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		address.Phone = strings.TrimSpace(*input.Phone)
	}
	if err := s.store.Update(ctx, address); err != nil {
		return AddressDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
	}
	return toDTO(*address), nil
}

// Delete removes an owned address.
func (s *service) Delete(ctx context.Context, caller types.Caller, id int64) error {
	if _, err := s.loadOwned(ctx, caller, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	return nil
}

// DeleteBatch removes a set of addresses one by one so ownership checks
// apply to each.
func (s *service) DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error {
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "ids are required")
	}
	for _, id := range ids {
		if err := s.Delete(ctx, caller, id); err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, caller types.Caller, id int64) (*models.Address, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	address, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	if !caller.IsAdmin() && address.UserID != caller.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "address belongs to another user")
	}
	return address, nil
}

func toDTO(address models.Address) AddressDTO {
	return AddressDTO{
		ID:        address.ID,
		UserID:    address.UserID,
		Consignee: address.Consignee,
		Address:   address.Address,
		Phone:     address.Phone,
	}
}
