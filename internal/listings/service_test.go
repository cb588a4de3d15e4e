package listings

import (
	"context"
	"testing"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestCreateStampsOwnerAndDefaults(t *testing.T) {
	t.Parallel()

	store := &stubListingStore{}
	svc := newTestService(t, store)

	dto, err := svc.Create(context.Background(), userCaller(4), CreateListingInput{
		Name:     "  Mountain bike ",
		Price:    decimal.RequireFromString("120.00"),
		Category: "sports",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.UserID != 4 {
		t.Fatalf("expected owner 4, got %d", dto.UserID)
	}
	if dto.Status != enums.ListingStatusPending {
		t.Fatalf("expected pending status, got %s", dto.Status)
	}
	if dto.ReadCount != 0 {
		t.Fatalf("expected zero read count, got %d", dto.ReadCount)
	}
	if dto.Name != "Mountain bike" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
}

func TestListForcesOwnerForUserRole(t *testing.T) {
	t.Parallel()

	other := int64(99)
	store := &stubListingStore{}
	svc := newTestService(t, store)

	if _, err := svc.List(context.Background(), userCaller(4), Filter{UserID: &other}, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.UserID == nil || *store.lastFilter.UserID != 4 {
		t.Fatalf("expected filter forced to caller, got %+v", store.lastFilter.UserID)
	}

	if _, err := svc.List(context.Background(), adminCaller(), Filter{UserID: &other}, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.UserID == nil || *store.lastFilter.UserID != 99 {
		t.Fatalf("expected admin filter untouched, got %+v", store.lastFilter.UserID)
	}
}

func TestListAllForcesOwnerForUserRole(t *testing.T) {
	t.Parallel()

	other := int64(99)
	store := &stubListingStore{rows: []models.Listing{{ID: 1, Name: "Desk lamp", UserID: 4}}}
	svc := newTestService(t, store)

	items, err := svc.ListAll(context.Background(), userCaller(4), Filter{UserID: &other})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.UserID == nil || *store.lastFilter.UserID != 4 {
		t.Fatalf("expected filter forced to caller, got %+v", store.lastFilter.UserID)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("expected one row, got %+v", items)
	}

	if _, err := svc.ListAll(context.Background(), adminCaller(), Filter{UserID: &other}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.UserID == nil || *store.lastFilter.UserID != 99 {
		t.Fatalf("expected admin filter untouched, got %+v", store.lastFilter.UserID)
	}
}

func TestFrontListForcesApprovedAndCounts(t *testing.T) {
	t.Parallel()

	store := &stubListingStore{
		rows:  []models.Listing{{ID: 1, Name: "Desk lamp", Status: enums.ListingStatusApproved}},
		total: 1,
	}
	svc := newTestService(t, store)

	page, err := svc.FrontList(context.Background(), Filter{}, pagination.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.Status == nil || *store.lastFilter.Status != enums.ListingStatusApproved {
		t.Fatalf("expected approved filter, got %+v", store.lastFilter.Status)
	}
	if len(page.Items) != 1 || page.Items[0].LikeCount != 3 {
		t.Fatalf("expected like count 3, got %+v", page.Items)
	}
}

func TestUpdateResetsStatusForUserRole(t *testing.T) {
	t.Parallel()

	store := &stubListingStore{
		byID: &models.Listing{ID: 1, Name: "Desk lamp", UserID: 4, Status: enums.ListingStatusApproved},
	}
	svc := newTestService(t, store)

	approved := enums.ListingStatusApproved
	dto, err := svc.Update(context.Background(), userCaller(4), UpdateListingInput{ID: 1, Status: &approved})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Status != enums.ListingStatusPending {
		t.Fatalf("user edit should reset status to pending, got %s", dto.Status)
	}

	store.byID.Status = enums.ListingStatusPending
	dto, err = svc.Update(context.Background(), adminCaller(), UpdateListingInput{ID: 1, Status: &approved})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Status != enums.ListingStatusApproved {
		t.Fatalf("admin edit should apply status, got %s", dto.Status)
	}
}

func TestUpdateRejectsForeignListing(t *testing.T) {
	t.Parallel()

	store := &stubListingStore{
		byID: &models.Listing{ID: 1, UserID: 9},
	}
	svc := newTestService(t, store)

	_, err := svc.Update(context.Background(), userCaller(4), UpdateListingInput{ID: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetBumpsReadCountAndViewerFlags(t *testing.T) {
	t.Parallel()

	store := &stubListingStore{
		byID: &models.Listing{ID: 1, Name: "Desk lamp", UserID: 9, ReadCount: 5},
	}
	svc := newTestService(t, store)

	viewer := userCaller(4)
	detail, err := svc.Get(context.Background(), &viewer, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.bumped {
		t.Fatal("expected read count bump")
	}
	if detail.ReadCount != 6 {
		t.Fatalf("expected read count 6, got %d", detail.ReadCount)
	}
	if !detail.Liked || !detail.Collected {
		t.Fatalf("expected viewer flags set, got %+v", detail)
	}
	if detail.SellerName != "Sam" {
		t.Fatalf("expected seller name, got %q", detail.SellerName)
	}

	detail, err = svc.Get(context.Background(), nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Liked || detail.Collected {
		t.Fatalf("anonymous viewer should have no flags, got %+v", detail)
	}
}

func TestDeleteCleansLikesAndCollects(t *testing.T) {
	t.Parallel()

	store := &stubListingStore{
		byID: &models.Listing{ID: 1, UserID: 4},
	}
	likes := &stubPairCounter{}
	collects := &stubPairCounter{}
	svc := newTestServiceWith(t, store, likes, collects)

	if err := svc.Delete(context.Background(), userCaller(4), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !likes.cleared || !collects.cleared {
		t.Fatal("expected like and collect cleanup")
	}
	if !store.deleted {
		t.Fatal("expected listing delete")
	}
}

func newTestService(t *testing.T, store listingStore) Service {
	t.Helper()
	return newTestServiceWith(t, store, &stubPairCounter{count: 3, exists: true}, &stubPairCounter{count: 1, exists: true})
}

func newTestServiceWith(t *testing.T, store listingStore, likes likeCounter, collects collectCounter) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		ListingRepo: store,
		Likes:       likes,
		Collects:    collects,
		Sellers: sellerLoaderFunc(func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Name: "Sam"}, nil
		}),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func userCaller(id int64) types.Caller {
	return types.Caller{ID: id, Role: enums.RoleUser}
}

func adminCaller() types.Caller {
	return types.Caller{ID: 1, Role: enums.RoleAdmin}
}

type sellerLoaderFunc func(ctx context.Context, id int64) (*models.User, error)

func (f sellerLoaderFunc) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return f(ctx, id)
}

type stubListingStore struct {
	byID       *models.Listing
	rows       []models.Listing
	total      int64
	lastFilter Filter
	bumped     bool
	deleted    bool
}

func (s *stubListingStore) FindByID(ctx context.Context, id int64) (*models.Listing, error) {
	if s.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.byID
	return &copied, nil
}

func (s *stubListingStore) List(ctx context.Context, filter Filter, params pagination.Params) ([]models.Listing, int64, error) {
	s.lastFilter = filter
	return s.rows, s.total, nil
}

func (s *stubListingStore) ListAll(ctx context.Context, filter Filter) ([]models.Listing, error) {
	s.lastFilter = filter
	return s.rows, nil
}

func (s *stubListingStore) Create(ctx context.Context, listing *models.Listing) error {
	listing.ID = 1
	return nil
}

func (s *stubListingStore) Update(ctx context.Context, listing *models.Listing) error {
	return nil
}

func (s *stubListingStore) Delete(ctx context.Context, id int64) error {
	s.deleted = true
	return nil
}

func (s *stubListingStore) IncrementReadCount(ctx context.Context, id int64) error {
	s.bumped = true
	return nil
}

type stubPairCounter struct {
	count   int64
	exists  bool
	cleared bool
}

func (s *stubPairCounter) Exists(ctx context.Context, userID, listingID int64) (bool, error) {
	return s.exists, nil
}

func (s *stubPairCounter) CountByListing(ctx context.Context, listingID int64) (int64, error) {
	return s.count, nil
}

func (s *stubPairCounter) DeleteByListing(ctx context.Context, listingID int64) error {
	s.cleared = true
	return nil
}
