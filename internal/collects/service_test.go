package collects

import (
	"context"
	"errors"
	"testing"

	"github.com/Sum1ght/schand/pkg/db/models"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	t.Parallel()

	store := &stubCollectStore{}
	svc := newTestService(t, store, &stubListingLoader{listing: &models.Listing{ID: 5}})
	user := types.Caller{ID: 2, Role: enums.RoleUser}

	outcome, err := svc.Toggle(context.Background(), user, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != ToggleAdded {
		t.Fatalf("expected added, got %s", outcome)
	}

	store.existing = &models.Collect{ID: 8, UserID: 2, ListingID: 5}
	outcome, err = svc.Toggle(context.Background(), user, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != ToggleRemoved {
		t.Fatalf("expected removed, got %s", outcome)
	}
}

func TestToggleDuplicateInsertIsBenign(t *testing.T) {
	t.Parallel()

	store := &stubCollectStore{insertErr: errors.New(`duplicate key value violates unique constraint "collects_user_listing_key"`)}
	svc := newTestService(t, store, &stubListingLoader{listing: &models.Listing{ID: 5}})

	outcome, err := svc.Toggle(context.Background(), types.Caller{ID: 2, Role: enums.RoleUser}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != ToggleAdded {
		t.Fatalf("expected added on duplicate insert, got %s", outcome)
	}
}

func TestDeleteRejectsForeignCollect(t *testing.T) {
	t.Parallel()

	store := &stubCollectStore{byID: &models.Collect{ID: 8, UserID: 9, ListingID: 5}}
	svc := newTestService(t, store, &stubListingLoader{})

	err := svc.Delete(context.Background(), types.Caller{ID: 2, Role: enums.RoleUser}, 8)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), types.Caller{ID: 1, Role: enums.RoleAdmin}, 8); err != nil {
		t.Fatalf("admin delete should pass: %v", err)
	}
}

func TestListMineWrapsPage(t *testing.T) {
	t.Parallel()

	store := &stubCollectStore{
		items: []CollectedListingDTO{{ID: 1, ListingID: 5, Name: "Desk lamp"}},
		total: 14,
	}
	svc := newTestService(t, store, &stubListingLoader{})

	page, err := svc.ListMine(context.Background(), types.Caller{ID: 2, Role: enums.RoleUser}, pagination.Params{Page: 2, Size: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 14 || page.Page != 2 || page.Size != 5 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func newTestService(t *testing.T, store collectStore, listings listingLoader) Service {
	t.Helper()
	svc, err := NewService(store, listings)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubCollectStore struct {
	existing  *models.Collect
	byID      *models.Collect
	insertErr error
	items     []CollectedListingDTO
	total     int64
}

func (s *stubCollectStore) Find(ctx context.Context, userID, listingID int64) (*models.Collect, error) {
	return s.existing, nil
}

func (s *stubCollectStore) FindByID(ctx context.Context, id int64) (*models.Collect, error) {
	if s.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byID, nil
}

func (s *stubCollectStore) Insert(ctx context.Context, userID, listingID int64) error {
	return s.insertErr
}

func (s *stubCollectStore) DeleteByID(ctx context.Context, id int64) error { return nil }

func (s *stubCollectStore) DeleteBatch(ctx context.Context, ids []int64) error { return nil }

func (s *stubCollectStore) ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]CollectedListingDTO, int64, error) {
	return s.items, s.total, nil
}

type stubListingLoader struct {
	listing *models.Listing
	err     error
}

func (s *stubListingLoader) FindByID(ctx context.Context, id int64) (*models.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listing, nil
}
