package listings

import (
	"context"
	"testing"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupListingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	listings := `
CREATE TABLE IF NOT EXISTS listings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0,
  content TEXT,
  ship_address TEXT,
  image TEXT,
  category TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  sale_status TEXT NOT NULL DEFAULT 'on_sale',
  user_id INTEGER NOT NULL,
  read_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(listings).Error)
	return db
}

func seedListing(t *testing.T, repo *Repository, name, category string, userID int64, status enums.ListingStatus, price string) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Category:   category,
		Status:     status,
		SaleStatus: enums.SaleStatusOnSale,
		UserID:     userID,
	}
	require.NoError(t, repo.Create(context.Background(), listing))
	require.NotZero(t, listing.ID)
	return listing
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedListing(t, repo, "Mountain bike", "sports", 1, enums.ListingStatusApproved, "120.00")
	seedListing(t, repo, "City bike", "sports", 2, enums.ListingStatusPending, "80.00")
	seedListing(t, repo, "Desk lamp", "home", 1, enums.ListingStatusApproved, "25.50")

	rows, total, err := repo.List(ctx, Filter{Name: "bike"}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	approved := enums.ListingStatusApproved
	rows, total, err = repo.List(ctx, Filter{Status: &approved}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	owner := int64(1)
	rows, total, err = repo.List(ctx, Filter{UserID: &owner, Category: "home"}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Desk lamp", rows[0].Name)
}

func TestRepositoryListAllSkipsPagination(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		seedListing(t, repo, "Chair", "home", 1, enums.ListingStatusApproved, "10.00")
	}

	rows, err := repo.ListAll(ctx, Filter{Category: "home"})
	require.NoError(t, err)
	assert.Len(t, rows, 15)

	rows, err = repo.ListAll(ctx, Filter{Category: "sports"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryListSortsByPrice(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedListing(t, repo, "A", "misc", 1, enums.ListingStatusApproved, "30.00")
	seedListing(t, repo, "B", "misc", 1, enums.ListingStatusApproved, "10.00")
	seedListing(t, repo, "C", "misc", 1, enums.ListingStatusApproved, "20.00")

	rows, _, err := repo.List(ctx, Filter{Sort: "price_asc"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, "A", rows[2].Name)
}

func TestRepositoryIncrementReadCount(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	listing := seedListing(t, repo, "Desk lamp", "home", 1, enums.ListingStatusApproved, "25.50")

	require.NoError(t, repo.IncrementReadCount(ctx, listing.ID))
	require.NoError(t, repo.IncrementReadCount(ctx, listing.ID))

	reloaded, err := repo.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.ReadCount)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	listing := seedListing(t, repo, "Desk lamp", "home", 1, enums.ListingStatusApproved, "25.50")
	require.NoError(t, repo.Delete(ctx, listing.ID))

	_, err := repo.FindByID(ctx, listing.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
