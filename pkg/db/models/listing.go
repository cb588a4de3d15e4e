package models

import (
	"time"

	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/shopspring/decimal"
)

// Listing represents a seller's posted second-hand item.
type Listing struct {
	ID          int64               `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string              `gorm:"column:name;not null"`
	Price       decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	Content     *string             `gorm:"column:content"`
	ShipAddress *string             `gorm:"column:ship_address"`
	Image       *string             `gorm:"column:image"`
	Category    string              `gorm:"column:category;not null"`
	Status      enums.ListingStatus `gorm:"column:status;not null;default:'pending'"`
	SaleStatus  enums.SaleStatus    `gorm:"column:sale_status;not null;default:'on_sale'"`
	UserID      int64               `gorm:"column:user_id;not null;index:listings_user_id_idx"`
	ReadCount   int                 `gorm:"column:read_count;not null;default:0"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
