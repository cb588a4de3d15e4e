package listings

import (
	"time"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/shopspring/decimal"
)

// ListingDTO is a full listing row as seen by management screens.
type ListingDTO struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Price       decimal.Decimal     `json:"price"`
	Content     *string             `json:"content,omitempty"`
	ShipAddress *string             `json:"shipAddress,omitempty"`
	Image       *string             `json:"image,omitempty"`
	Category    string              `json:"category"`
	Status      enums.ListingStatus `json:"status"`
	SaleStatus  enums.SaleStatus    `json:"saleStatus"`
	UserID      int64               `json:"userId"`
	ReadCount   int                 `json:"readCount"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ListingDetailDTO adds the derived per-viewer fields to a listing.
type ListingDetailDTO struct {
	ListingDTO
	SellerName   string `json:"sellerName"`
	LikeCount    int64  `json:"likeCount"`
	CollectCount int64  `json:"collectCount"`
	Liked        bool   `json:"liked"`
	Collected    bool   `json:"collected"`
}

// FrontListingDTO is the public storefront row. Only the like count is
// derived; per-viewer flags are left to the detail endpoint.
type FrontListingDTO struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Price      decimal.Decimal  `json:"price"`
	Image      *string          `json:"image,omitempty"`
	Category   string           `json:"category"`
	SaleStatus enums.SaleStatus `json:"saleStatus"`
	ReadCount  int              `json:"readCount"`
	LikeCount  int64            `json:"likeCount"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// CreateListingInput is the payload for posting a new listing. Status,
// owner and read count are stamped by the service.
type CreateListingInput struct {
	Name        string
	Price       decimal.Decimal
	Content     *string
	ShipAddress *string
	Image       *string
	Category    string
}

// UpdateListingInput carries a partial listing update. Nil fields keep
// their stored value.
type UpdateListingInput struct {
	ID          int64
	Name        *string
	Price       *decimal.Decimal
	Content     *string
	ShipAddress *string
	Image       *string
	Category    *string
	Status      *enums.ListingStatus
	SaleStatus  *enums.SaleStatus
}

// Filter narrows listing queries.
type Filter struct {
	Name       string
	Category   string
	Status     *enums.ListingStatus
	SaleStatus *enums.SaleStatus
	UserID     *int64
	Sort       string
}

func toDTO(listing models.Listing) ListingDTO {
	return ListingDTO{
		ID:          listing.ID,
		Name:        listing.Name,
		Price:       listing.Price,
		Content:     listing.Content,
		ShipAddress: listing.ShipAddress,
		Image:       listing.Image,
		Category:    listing.Category,
		Status:      listing.Status,
		SaleStatus:  listing.SaleStatus,
		UserID:      listing.UserID,
		ReadCount:   listing.ReadCount,
		CreatedAt:   listing.CreatedAt,
		UpdatedAt:   listing.UpdatedAt,
	}
}
