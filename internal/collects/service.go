package collects

import (
	"context"
	"errors"

	pkgdb "github.com/Sum1ght/schand/pkg/db"
	"github.com/Sum1ght/schand/pkg/db/models"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

const uniquePairConstraint = "collects_user_listing_key"

// ToggleOutcome reports which way a toggle flipped.
type ToggleOutcome string

const (
	ToggleAdded   ToggleOutcome = "added"
	ToggleRemoved ToggleOutcome = "removed"
)

type listingLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Listing, error)
}

type collectStore interface {
	Find(ctx context.Context, userID, listingID int64) (*models.Collect, error)
	FindByID(ctx context.Context, id int64) (*models.Collect, error)
	Insert(ctx context.Context, userID, listingID int64) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
	ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]CollectedListingDTO, int64, error)
}

// Service exposes the collect toggle and the caller's collection page.
type Service interface {
	Toggle(ctx context.Context, caller types.Caller, listingID int64) (ToggleOutcome, error)
	ListMine(ctx context.Context, caller types.Caller, params pagination.Params) (pagination.Page[CollectedListingDTO], error)
	Delete(ctx context.Context, caller types.Caller, id int64) error
	DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error
}

type service struct {
	store    collectStore
	listings listingLoader
}

// NewService builds a collect service backed by the provided stack.
func NewService(store collectStore, listings listingLoader) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collect store is required")
	}
	if listings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing loader is required")
	}
	return &service{store: store, listings: listings}, nil
}

// Toggle flips the caller's collect on a listing. A concurrent duplicate
// insert lands on the pair's unique constraint and is reported as added.
func (s *service) Toggle(ctx context.Context, caller types.Caller, listingID int64) (ToggleOutcome, error) {
	if listingID <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}

	existing, err := s.store.Find(ctx, caller.ID, listingID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load collect")
	}
	if existing != nil {
		if err := s.store.DeleteByID(ctx, existing.ID); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove collect")
		}
		return ToggleRemoved, nil
	}

	if err := s.store.Insert(ctx, caller.ID, listingID); err != nil {
		if pkgdb.IsUniqueViolation(err, uniquePairConstraint) {
			return ToggleAdded, nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add collect")
	}
	return ToggleAdded, nil
}

// ListMine returns the caller's collected listings.
func (s *service) ListMine(ctx context.Context, caller types.Caller, params pagination.Params) (pagination.Page[CollectedListingDTO], error) {
	items, total, err := s.store.ListByUser(ctx, caller.ID, params)
	if err != nil {
		return pagination.Page[CollectedListingDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list collects")
	}
	return pagination.NewPage(items, total, params), nil
}

// Delete removes one collect. Non-admin callers may only remove their own.
func (s *service) Delete(ctx context.Context, caller types.Caller, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "collect id is required")
	}
	collect, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "collect not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load collect")
	}
	if !caller.IsAdmin() && collect.UserID != caller.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "collect belongs to another user")
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove collect")
	}
	return nil
}

// DeleteBatch removes a set of collects after checking each one's owner.
func (s *service) DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error {
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "ids are required")
	}
	if !caller.IsAdmin() {
		for _, id := range ids {
			collect, err := s.store.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load collect")
			}
			if collect.UserID != caller.ID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "collect belongs to another user")
			}
		}
	}
	if err := s.store.DeleteBatch(ctx, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove collects")
	}
	return nil
}
