package help

import (
	"context"
	"testing"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHelpTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	articles := `
CREATE TABLE IF NOT EXISTS help_articles (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  image TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(articles).Error)
	return db
}

func TestRepositoryCRUD(t *testing.T) {
	db := setupHelpTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	article := &models.HelpArticle{Title: "How to post a listing", Content: "Open the form."}
	require.NoError(t, repo.Create(ctx, article))
	require.NotZero(t, article.ID)

	loaded, err := repo.FindByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "How to post a listing", loaded.Title)

	loaded.Content = "Open the listing form."
	require.NoError(t, repo.Update(ctx, loaded))

	require.NoError(t, repo.Delete(ctx, article.ID))
	_, err = repo.FindByID(ctx, article.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByTitle(t *testing.T) {
	db := setupHelpTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, title := range []string{"Posting basics", "Payment help", "Posting images"} {
		require.NoError(t, repo.Create(ctx, &models.HelpArticle{Title: title, Content: "c"}))
	}

	rows, total, err := repo.List(ctx, "Posting", pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	rows, total, err = repo.List(ctx, "", pagination.Params{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 2)
}
