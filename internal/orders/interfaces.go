package orders

import (
	"context"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/Sum1ght/schand/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines order persistence. WithTx binds a copy to an open
// transaction so creation can join the listing update atomically.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*models.Order, error)
	List(ctx context.Context, filter Filter, params pagination.Params) ([]models.Order, int64, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type listingSource interface {
	FindByID(ctx context.Context, id int64) (*models.Listing, error)
	UpdateSaleStatusTx(ctx context.Context, tx *gorm.DB, id int64, status enums.SaleStatus) error
}

type addressSource interface {
	FindByID(ctx context.Context, id int64) (*models.Address, error)
}

type buyerSource interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}
