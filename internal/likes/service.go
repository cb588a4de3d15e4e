package likes

import (
	"context"
	"errors"

	pkgdb "github.com/Sum1ght/schand/pkg/db"
	"github.com/Sum1ght/schand/pkg/db/models"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

const uniquePairConstraint = "likes_user_listing_key"

// ToggleOutcome reports which way a toggle flipped.
type ToggleOutcome string

const (
	ToggleAdded   ToggleOutcome = "added"
	ToggleRemoved ToggleOutcome = "removed"
)

type listingLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Listing, error)
}

type likeStore interface {
	Find(ctx context.Context, userID, listingID int64) (*models.Like, error)
	Insert(ctx context.Context, userID, listingID int64) error
	DeleteByID(ctx context.Context, id int64) error
}

// Service exposes the like toggle.
type Service interface {
	Toggle(ctx context.Context, caller types.Caller, listingID int64) (ToggleOutcome, error)
}

type service struct {
	store    likeStore
	listings listingLoader
}

// NewService builds a like service backed by the provided stack.
func NewService(store likeStore, listings listingLoader) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "like store is required")
	}
	if listings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing loader is required")
	}
	return &service{store: store, listings: listings}, nil
}

// Toggle flips the caller's like on a listing. A concurrent duplicate insert
// lands on the pair's unique constraint and is reported as an added like.
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
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load like")
	}
	if existing != nil {
		if err := s.store.DeleteByID(ctx, existing.ID); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove like")
		}
		return ToggleRemoved, nil
	}

	if err := s.store.Insert(ctx, caller.ID, listingID); err != nil {
		if pkgdb.IsUniqueViolation(err, uniquePairConstraint) {
			return ToggleAdded, nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add like")
	}
	return ToggleAdded, nil
}
