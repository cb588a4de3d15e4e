package orders

import (
	"time"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderDTO is a full order row including its frozen snapshots.
type OrderDTO struct {
	ID           int64             `json:"id"`
	OrderNo      string            `json:"orderNo"`
	ListingID    int64             `json:"listingId"`
	ListingName  string            `json:"listingName"`
	ListingImage *string           `json:"listingImage,omitempty"`
	Total        decimal.Decimal   `json:"total"`
	BuyerID      *int64            `json:"buyerId,omitempty"`
	BuyerName    string            `json:"buyerName"`
	SellerID     int64             `json:"sellerId"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Status       enums.OrderStatus `json:"status"`
	PlacedAt     time.Time         `json:"placedAt"`
}

// CreateOrderInput references the listing being bought and the delivery
// address to snapshot.
type CreateOrderInput struct {
	ListingID int64
	AddressID int64
}

// UpdateStatusInput advances an order to a new status.
type UpdateStatusInput struct {
	ID     int64
	Status enums.OrderStatus
}

// Filter narrows order queries.
type Filter struct {
	OrderNo  string
	Status   *enums.OrderStatus
	BuyerID  *int64
	SellerID *int64
}

// ChartPoint is one entry of a report series.
type ChartPoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

func toDTO(order models.Order) OrderDTO {
	return OrderDTO{
		ID:           order.ID,
		OrderNo:      order.OrderNo,
		ListingID:    order.ListingID,
		ListingName:  order.ListingName,
		ListingImage: order.ListingImage,
		Total:        order.Total,
		BuyerID:      order.BuyerID,
		BuyerName:    order.BuyerName,
		SellerID:     order.SellerID,
		Address:      order.Address,
		Phone:        order.Phone,
		Status:       order.Status,
		PlacedAt:     order.PlacedAt,
	}
}
