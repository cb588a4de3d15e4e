package collects

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollectedListingDTO is one row of a user's collection page.
type CollectedListingDTO struct {
	ID          int64           `json:"id"`
	CollectedAt time.Time       `json:"collectedAt"`
	ListingID   int64           `json:"listingId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image,omitempty"`
	Category    string          `json:"category"`
	SaleStatus  string          `json:"saleStatus"`
}
