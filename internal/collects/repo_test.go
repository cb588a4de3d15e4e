package collects

import (
	"context"
	"testing"

	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCollectsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	collects := `
CREATE TABLE IF NOT EXISTS collects (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  listing_id INTEGER NOT NULL,
  created_at DATETIME,
  CONSTRAINT collects_user_listing_key UNIQUE (user_id, listing_id)
);`
	listings := `
CREATE TABLE IF NOT EXISTS listings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0,
  content TEXT,
  image TEXT,
  ship_address TEXT,
  category TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  sale_status TEXT NOT NULL DEFAULT 'on_sale',
  user_id INTEGER NOT NULL,
  read_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(collects).Error)
	require.NoError(t, db.Exec(listings).Error)
	return db
}

func TestRepositoryToggleLifecycle(t *testing.T) {
	db := setupCollectsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, 1, 10))

	collect, err := repo.Find(ctx, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, collect)

	err = repo.Insert(ctx, 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")

	require.NoError(t, repo.DeleteByID(ctx, collect.ID))
	gone, err := repo.Find(ctx, 1, 10)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRepositoryListByUser(t *testing.T) {
	db := setupCollectsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seed := `INSERT INTO listings (id, name, price, category, status, sale_status, user_id, read_count)
VALUES (10, 'Desk lamp', 25.50, 'home', 'approved', 'on_sale', 2, 0),
       (11, 'Textbook', 12.00, 'books', 'approved', 'sold', 3, 4)`
	require.NoError(t, db.Exec(seed).Error)

	require.NoError(t, repo.Insert(ctx, 1, 10))
	require.NoError(t, repo.Insert(ctx, 1, 11))
	require.NoError(t, repo.Insert(ctx, 9, 10))

	items, total, err := repo.ListByUser(ctx, 1, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotZero(t, item.ID)
		assert.NotEmpty(t, item.Name)
	}

	items, total, err = repo.ListByUser(ctx, 1, pagination.Params{Page: 2, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 1)
}
