package listings

import (
	"context"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/Sum1ght/schand/pkg/pagination"
	"gorm.io/gorm"
)

// Repository encapsulates listing persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a listing repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a listing by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// List returns a page of listings matching the filter plus the total count.
func (r *Repository) List(ctx context.Context, filter Filter, params pagination.Params) ([]models.Listing, int64, error) {
	params = params.Normalize()

	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.Listing{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Listing
	dataQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.Listing{}), filter)
	err := r.applySort(dataQuery, filter.Sort).
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListAll returns every listing matching the filter without pagination.
func (r *Repository) ListAll(ctx context.Context, filter Filter) ([]models.Listing, error) {
	var rows []models.Listing
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Listing{}), filter)
	if err := r.applySort(query, filter.Sort).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts the listing and backfills its generated fields.
func (r *Repository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// Update persists the full listing row.
func (r *Repository) Update(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// Delete removes a listing row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Listing{}).
		Error
}

// UpdateSaleStatusTx flips the sale status, joining the caller's open
// transaction when one is passed.
func (r *Repository) UpdateSaleStatusTx(ctx context.Context, tx *gorm.DB, id int64, status enums.SaleStatus) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("sale_status", status).
		Error
}

// IncrementReadCount bumps the view counter without racing other readers.
func (r *Repository) IncrementReadCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("read_count", gorm.Expr("read_count + 1")).
		Error
}

func (r *Repository) applyFilter(query *gorm.DB, filter Filter) *gorm.DB {
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SaleStatus != nil {
		query = query.Where("sale_status = ?", *filter.SaleStatus)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	return query
}

func (r *Repository) applySort(query *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "price_asc":
		return query.Order("price ASC").Order("id DESC")
	case "price_desc":
		return query.Order("price DESC").Order("id DESC")
	case "hot":
		return query.Order("read_count DESC").Order("id DESC")
	default:
		return query.Order("created_at DESC").Order("id DESC")
	}
}
