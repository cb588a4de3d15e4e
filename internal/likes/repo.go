package likes

import (
	"context"
	"errors"

	"github.com/Sum1ght/schand/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates like persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a like repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns the like row for a user/listing pair, or nil when absent.
func (r *Repository) Find(ctx context.Context, userID, listingID int64) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&like).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// Insert creates a like row. Duplicate pairs surface the unique violation
// to the caller, which treats it as an already-added like.
func (r *Repository) Insert(ctx context.Context, userID, listingID int64) error {
	like := models.Like{UserID: userID, ListingID: listingID}
	return r.db.WithContext(ctx).Create(&like).Error
}

// DeleteByID removes a single like row.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Like{}).
		Error
}

// Exists reports whether the user has liked the listing.
func (r *Repository) Exists(ctx context.Context, userID, listingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByListing returns how many users liked the listing.
func (r *Repository) CountByListing(ctx context.Context, listingID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("listing_id = ?", listingID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByListing removes all likes attached to a listing.
func (r *Repository) DeleteByListing(ctx context.Context, listingID int64) error {
	return r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Delete(&models.Like{}).
		Error
}
