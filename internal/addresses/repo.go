package addresses

import (
	"context"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/pagination"
	"gorm.io/gorm"
)

// Repository encapsulates address persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an address repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads an address by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// List returns a page of addresses plus the total count. A zero userID
// matches every owner.
func (r *Repository) List(ctx context.Context, userID int64, params pagination.Params) ([]models.Address, int64, error) {
	params = params.Normalize()

	scope := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Address{})
		if userID > 0 {
			query = query.Where("user_id = ?", userID)
		}
		return query
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Address
	err := scope().
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create inserts the address and backfills its generated fields.
func (r *Repository) Create(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// Update persists the full address row.
func (r *Repository) Update(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// Delete removes an address row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Address{}).
		Error
}

// DeleteBatch removes the given address rows.
func (r *Repository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.Address{}).
		Error
}
