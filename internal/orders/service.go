package orders

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	OrderRepo Repository
	Tx        txRunner
	Listings  listingSource
	Addresses addressSource
	Buyers    buyerSource
}

// Service exposes order orchestration and the chart reports.
type Service interface {
	Create(ctx context.Context, caller types.Caller, input CreateOrderInput) (OrderDTO, error)
	Get(ctx context.Context, caller types.Caller, id int64) (OrderDTO, error)
	GetByOrderNo(ctx context.Context, caller types.Caller, orderNo string) (OrderDTO, error)
	List(ctx context.Context, caller types.Caller, filter Filter, params pagination.Params) (pagination.Page[OrderDTO], error)
	SaleList(ctx context.Context, caller types.Caller, filter Filter, params pagination.Params) (pagination.Page[OrderDTO], error)
	UpdateStatus(ctx context.Context, caller types.Caller, input UpdateStatusInput) (OrderDTO, error)
	Delete(ctx context.Context, caller types.Caller, id int64) error
	DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error
	DailyTotals(ctx context.Context) ([]ChartPoint, error)
	BuyerTotals(ctx context.Context) ([]ChartPoint, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	listings  listingSource
	addresses addressSource
	buyers    buyerSource
	now       func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Listings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing source is required")
	}
	if params.Addresses == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address source is required")
	}
	if params.Buyers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer source is required")
	}
	return &service{
		repo:      params.OrderRepo,
		tx:        params.Tx,
		listings:  params.Listings,
		addresses: params.Addresses,
		buyers:    params.Buyers,
		now:       time.Now,
	}, nil
}

// Create places an order. The listing and address fields are copied into the
// order row and never re-read afterwards. The insert and the listing's sale
// status flip commit together or not at all.
func (s *service) Create(ctx context.Context, caller types.Caller, input CreateOrderInput) (OrderDTO, error) {
	if input.ListingID <= 0 {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	if input.AddressID <= 0 {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}

	listing, err := s.listings.FindByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	if listing.SaleStatus == enums.SaleStatusSold {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "listing is already sold")
	}
	if listing.UserID == caller.ID {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot buy your own listing")
	}

	address, err := s.addresses.FindByID(ctx, input.AddressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "address not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	if address.UserID != caller.ID {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "address belongs to another user")
	}

	buyer, err := s.buyers.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "buyer not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load buyer")
	}

	buyerID := caller.ID
	order := models.Order{
		OrderNo:      s.nextOrderNo(),
		ListingID:    listing.ID,
		ListingName:  listing.Name,
		ListingImage: listing.Image,
		Total:        listing.Price,
		BuyerID:      &buyerID,
		BuyerName:    buyer.Name,
		SellerID:     listing.UserID,
		Address:      address.Address,
		Phone:        address.Phone,
		Status:       enums.OrderStatusNotPaid,
		PlacedAt:     s.now(),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &order); err != nil {
			return err
		}
		return s.listings.UpdateSaleStatusTx(ctx, tx, listing.ID, enums.SaleStatusSold)
	})
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return toDTO(order), nil
}

// Get returns one order. Non-admin callers must be its buyer or seller.
func (s *service) Get(ctx context.Context, caller types.Caller, id int64) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}
	if err := s.ensureParty(caller, order); err != nil {
		return OrderDTO{}, err
	}
	return toDTO(*order), nil
}

// GetByOrderNo resolves an order by its public number.
func (s *service) GetByOrderNo(ctx context.Context, caller types.Caller, orderNo string) (OrderDTO, error) {
	if strings.TrimSpace(orderNo) == "" {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindByOrderNo(ctx, strings.TrimSpace(orderNo))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if err := s.ensureParty(caller, order); err != nil {
		return OrderDTO{}, err
	}
	return toDTO(*order), nil
}

// List returns the purchase page. Non-admin callers only ever see orders
// they placed regardless of the submitted filter.
func (s *service) List(ctx context.Context, caller types.Caller, filter Filter, params pagination.Params) (pagination.Page[OrderDTO], error) {
	if !caller.IsAdmin() {
		filter.BuyerID = &caller.ID
	}
	return s.listPage(ctx, filter, params)
}

// SaleList returns the sales page. Non-admin callers only ever see orders
// on their own listings.
func (s *service) SaleList(ctx context.Context, caller types.Caller, filter Filter, params pagination.Params) (pagination.Page[OrderDTO], error) {
	if !caller.IsAdmin() {
		filter.SellerID = &caller.ID
	}
	return s.listPage(ctx, filter, params)
}

// UpdateStatus advances the order. Non-admin callers must be a party to it.
func (s *service) UpdateStatus(ctx context.Context, caller types.Caller, input UpdateStatusInput) (OrderDTO, error) {
	if !input.Status.IsValid() {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	order, err := s.loadOrder(ctx, input.ID)
	if err != nil {
		return OrderDTO{}, err
	}
	if err := s.ensureParty(caller, order); err != nil {
		return OrderDTO{}, err
	}
	order.Status = input.Status
	if err := s.repo.Update(ctx, order); err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	return toDTO(*order), nil
}

// Delete removes an order. Non-admin callers may only remove their own
// purchases.
func (s *service) Delete(ctx context.Context, caller types.Caller, id int64) error {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		if order.BuyerID == nil || *order.BuyerID != caller.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

// DeleteBatch removes a set of orders one by one so ownership checks apply
// to each.
func (s *service) DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error {
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "ids are required")
	}
	for _, id := range ids {
		if err := s.Delete(ctx, caller, id); err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *service) listPage(ctx context.Context, filter Filter, params pagination.Params) (pagination.Page[OrderDTO], error) {
	rows, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Page[OrderDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	items := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDTO(row))
	}
	return pagination.NewPage(items, total, params), nil
}

func (s *service) loadOrder(ctx context.Context, id int64) (*models.Order, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) ensureParty(caller types.Caller, order *models.Order) error {
	if caller.IsAdmin() {
		return nil
	}
	if order.BuyerID != nil && *order.BuyerID == caller.ID {
		return nil
	}
	if order.SellerID == caller.ID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
}

// nextOrderNo builds the public order number: epoch millis followed by a
// seven digit random suffix.
func (s *service) nextOrderNo() string {
	return fmt.Sprintf("%d%07d", s.now().UnixMilli(), rand.Intn(10_000_000))
}
