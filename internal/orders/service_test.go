package orders

import (
	"context"
	"regexp"
	"testing"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var orderNoPattern = regexp.MustCompile(`^\d{13}\d{7}$`)

func TestCreateSnapshotsListingAndAddress(t *testing.T) {
	t.Parallel()

	image := "bike.jpg"
	listing := &models.Listing{
		ID:         5,
		Name:       "Mountain bike",
		Price:      decimal.RequireFromString("120.00"),
		Image:      &image,
		UserID:     9,
		SaleStatus: enums.SaleStatusOnSale,
	}
	address := &models.Address{ID: 3, UserID: 4, Address: "12 North St", Phone: "555-0101"}
	buyer := &models.User{ID: 4, Name: "Sam"}

	repo := &stubOrdersRepo{}
	listingSrc := &stubListingSource{listing: listing}
	svc := newTestService(t, repo, listingSrc, address, buyer)

	dto, err := svc.Create(context.Background(), userCaller(4), CreateOrderInput{ListingID: 5, AddressID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.ListingName != "Mountain bike" || dto.Address != "12 North St" || dto.Phone != "555-0101" {
		t.Fatalf("unexpected snapshot: %+v", dto)
	}
	if !dto.Total.Equal(listing.Price) {
		t.Fatalf("expected total %s, got %s", listing.Price, dto.Total)
	}
	if dto.BuyerID == nil || *dto.BuyerID != 4 || dto.BuyerName != "Sam" {
		t.Fatalf("unexpected buyer snapshot: %+v", dto)
	}
	if dto.SellerID != 9 {
		t.Fatalf("expected seller 9, got %d", dto.SellerID)
	}
	if dto.Status != enums.OrderStatusNotPaid {
		t.Fatalf("expected not_paid, got %s", dto.Status)
	}
	if !orderNoPattern.MatchString(dto.OrderNo) {
		t.Fatalf("unexpected order number shape: %q", dto.OrderNo)
	}
	if listingSrc.soldID != 5 {
		t.Fatal("expected listing marked sold inside the transaction")
	}

	// later price edits must not leak into the persisted snapshot
	listing.Price = decimal.RequireFromString("999.00")
	if repo.created == nil || !repo.created.Total.Equal(decimal.RequireFromString("120.00")) {
		t.Fatalf("expected total frozen at 120.00, got %+v", repo.created)
	}
	if !dto.Total.Equal(decimal.RequireFromString("120.00")) {
		t.Fatalf("expected dto total frozen at 120.00, got %s", dto.Total)
	}
}

func TestCreateRejectsSoldListingAndOwnListing(t *testing.T) {
	t.Parallel()

	sold := &models.Listing{ID: 5, UserID: 9, SaleStatus: enums.SaleStatusSold}
	svc := newTestService(t, &stubOrdersRepo{}, &stubListingSource{listing: sold}, &models.Address{ID: 3, UserID: 4}, &models.User{ID: 4})

	_, err := svc.Create(context.Background(), userCaller(4), CreateOrderInput{ListingID: 5, AddressID: 3})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}

	own := &models.Listing{ID: 5, UserID: 4, SaleStatus: enums.SaleStatusOnSale}
	svc = newTestService(t, &stubOrdersRepo{}, &stubListingSource{listing: own}, &models.Address{ID: 3, UserID: 4}, &models.User{ID: 4})

	_, err = svc.Create(context.Background(), userCaller(4), CreateOrderInput{ListingID: 5, AddressID: 3})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateRejectsForeignAddress(t *testing.T) {
	t.Parallel()

	listing := &models.Listing{ID: 5, UserID: 9, SaleStatus: enums.SaleStatusOnSale}
	svc := newTestService(t, &stubOrdersRepo{}, &stubListingSource{listing: listing}, &models.Address{ID: 3, UserID: 99}, &models.User{ID: 4})

	_, err := svc.Create(context.Background(), userCaller(4), CreateOrderInput{ListingID: 5, AddressID: 3})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListForcesBuyerForUserRole(t *testing.T) {
	t.Parallel()

	other := int64(77)
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo, &stubListingSource{}, nil, nil)

	if _, err := svc.List(context.Background(), userCaller(4), Filter{BuyerID: &other}, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.BuyerID == nil || *repo.lastFilter.BuyerID != 4 {
		t.Fatalf("expected buyer forced to caller, got %+v", repo.lastFilter.BuyerID)
	}

	if _, err := svc.SaleList(context.Background(), userCaller(4), Filter{}, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.SellerID == nil || *repo.lastFilter.SellerID != 4 {
		t.Fatalf("expected seller forced to caller, got %+v", repo.lastFilter.SellerID)
	}
}

func TestGetRestrictsToParties(t *testing.T) {
	t.Parallel()

	buyerID := int64(4)
	repo := &stubOrdersRepo{byID: &models.Order{ID: 1, BuyerID: &buyerID, SellerID: 9}}
	svc := newTestService(t, repo, &stubListingSource{}, nil, nil)

	for _, caller := range []types.Caller{userCaller(4), userCaller(9), {ID: 1, Role: enums.RoleAdmin}} {
		if _, err := svc.Get(context.Background(), caller, 1); err != nil {
			t.Fatalf("expected access for %+v: %v", caller, err)
		}
	}

	_, err := svc.Get(context.Background(), userCaller(5), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	t.Parallel()

	buyerID := int64(4)
	repo := &stubOrdersRepo{byID: &models.Order{ID: 1, BuyerID: &buyerID, SellerID: 9, Status: enums.OrderStatusNotPaid}}
	svc := newTestService(t, repo, &stubListingSource{}, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), userCaller(4), UpdateStatusInput{ID: 1, Status: enums.OrderStatus("bogus")})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}

	dto, err := svc.UpdateStatus(context.Background(), userCaller(4), UpdateStatusInput{ID: 1, Status: enums.OrderStatusPaid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Status != enums.OrderStatusPaid {
		t.Fatalf("expected paid, got %s", dto.Status)
	}
}

func newTestService(t *testing.T, repo Repository, listings *stubListingSource, address *models.Address, buyer *models.User) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		OrderRepo: repo,
		Tx:        stubTxRunner{},
		Listings:  listings,
		Addresses: &stubAddressSource{address: address},
		Buyers:    &stubBuyerSource{user: buyer},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func userCaller(id int64) types.Caller {
	return types.Caller{ID: id, Role: enums.RoleUser}
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOrdersRepo struct {
	byID       *models.Order
	all        []models.Order
	created    *models.Order
	lastFilter Filter
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.Order) error {
	order.ID = 1
	s.created = order
	return nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	if s.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.byID
	return &copied, nil
}

func (s *stubOrdersRepo) FindByOrderNo(ctx context.Context, orderNo string) (*models.Order, error) {
	if s.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.byID
	return &copied, nil
}

func (s *stubOrdersRepo) List(ctx context.Context, filter Filter, params pagination.Params) ([]models.Order, int64, error) {
	s.lastFilter = filter
	return nil, 0, nil
}

func (s *stubOrdersRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.all, nil
}

func (s *stubOrdersRepo) Update(ctx context.Context, order *models.Order) error { return nil }

func (s *stubOrdersRepo) Delete(ctx context.Context, id int64) error { return nil }

func (s *stubOrdersRepo) DeleteBatch(ctx context.Context, ids []int64) error { return nil }

type stubListingSource struct {
	listing *models.Listing
	soldID  int64
}

func (s *stubListingSource) FindByID(ctx context.Context, id int64) (*models.Listing, error) {
	if s.listing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.listing, nil
}

func (s *stubListingSource) UpdateSaleStatusTx(ctx context.Context, tx *gorm.DB, id int64, status enums.SaleStatus) error {
	if status == enums.SaleStatusSold {
		s.soldID = id
	}
	return nil
}

type stubAddressSource struct {
	address *models.Address
}

func (s *stubAddressSource) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	if s.address == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.address, nil
}

type stubBuyerSource struct {
	user *models.User
}

func (s *stubBuyerSource) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}
