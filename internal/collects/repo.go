package collects

import (
	"context"
	"errors"
	"time"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsulates collect persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a collect repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns the collect row for a user/listing pair, or nil when absent.
func (r *Repository) Find(ctx context.Context, userID, listingID int64) (*models.Collect, error) {
	var collect models.Collect
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&collect).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collect, nil
}

// Insert creates a collect row. Duplicate pairs surface the unique violation.
func (r *Repository) Insert(ctx context.Context, userID, listingID int64) error {
	collect := models.Collect{UserID: userID, ListingID: listingID}
	return r.db.WithContext(ctx).Create(&collect).Error
}

// DeleteByID removes a single collect row.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Collect{}).
		Error
}

// DeleteBatch removes the given collect rows.
func (r *Repository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.Collect{}).
		Error
}

// FindByID loads a collect row by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Collect, error) {
	var collect models.Collect
	if err := r.db.WithContext(ctx).First(&collect, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collect, nil
}

// Exists reports whether the user has collected the listing.
func (r *Repository) Exists(ctx context.Context, userID, listingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Collect{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByListing returns how many users collected the listing.
func (r *Repository) CountByListing(ctx context.Context, listingID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Collect{}).
		Where("listing_id = ?", listingID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByListing removes all collects attached to a listing.
func (r *Repository) DeleteByListing(ctx context.Context, listingID int64) error {
	return r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Delete(&models.Collect{}).
		Error
}

type collectedListingRecord struct {
	CollectID   int64           `gorm:"column:collect_id"`
	CollectedAt time.Time       `gorm:"column:collected_at"`
	ListingID   int64           `gorm:"column:listing_id"`
	Name        string          `gorm:"column:name"`
	Price       decimal.Decimal `gorm:"column:price"`
	Image       *string         `gorm:"column:image"`
	Category    string          `gorm:"column:category"`
	SaleStatus  string          `gorm:"column:sale_status"`
}

// ListByUser returns the user's collected listings, newest first, with totals.
func (r *Repository) ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]CollectedListingDTO, int64, error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Table("collects c").
		Joins("JOIN listings l ON l.id = c.listing_id").
		Where("c.user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []collectedListingRecord
	err := base.
		Select("c.id AS collect_id, c.created_at AS collected_at, l.id AS listing_id, l.name, l.price, l.image, l.category, l.sale_status").
		Order("c.created_at DESC").
		Order("c.id DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Scan(&records).
		Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]CollectedListingDTO, 0, len(records))
	for _, record := range records {
		items = append(items, CollectedListingDTO{
			ID:          record.CollectID,
			CollectedAt: record.CollectedAt,
			ListingID:   record.ListingID,
			Name:        record.Name,
			Price:       record.Price,
			Image:       record.Image,
			Category:    record.Category,
			SaleStatus:  record.SaleStatus,
		})
	}
	return items, total, nil
}
