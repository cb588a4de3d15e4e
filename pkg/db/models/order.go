package models

import (
	"time"

	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order represents a purchase. The listing and address columns are snapshots
// taken at creation time and never re-read from their source rows.
type Order struct {
	ID           int64             `gorm:"column:id;primaryKey;autoIncrement"`
	OrderNo      string            `gorm:"column:order_no;not null;uniqueIndex:orders_order_no_key"`
	ListingID    int64             `gorm:"column:listing_id;not null;index:orders_listing_id_idx"`
	ListingName  string            `gorm:"column:listing_name;not null"`
	ListingImage *string           `gorm:"column:listing_image"`
	Total        decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	BuyerID      *int64            `gorm:"column:buyer_id;index:orders_buyer_id_idx"`
	BuyerName    string            `gorm:"column:buyer_name;not null;default:''"`
	SellerID     int64             `gorm:"column:seller_id;not null;index:orders_seller_id_idx"`
	Address      string            `gorm:"column:address;not null"`
	Phone        string            `gorm:"column:phone;not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'not_paid'"`
	PlacedAt     time.Time         `gorm:"column:placed_at;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
