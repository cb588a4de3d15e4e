package help

import (
	"context"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/pagination"
	"gorm.io/gorm"
)

// Repository encapsulates help article persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a help repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads an article by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.HelpArticle, error) {
	var article models.HelpArticle
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// List returns a page of articles plus the total count. A non-empty title
// narrows by substring.
func (r *Repository) List(ctx context.Context, title string, params pagination.Params) ([]models.HelpArticle, int64, error) {
	params = params.Normalize()

	scope := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.HelpArticle{})
		if title != "" {
			query = query.Where("title LIKE ?", "%"+title+"%")
		}
		return query
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.HelpArticle
	err := scope().
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create inserts the article and backfills its generated fields.
func (r *Repository) Create(ctx context.Context, article *models.HelpArticle) error {
	return r.db.WithContext(ctx).Create(article).Error
}

// Update persists the full article row.
func (r *Repository) Update(ctx context.Context, article *models.HelpArticle) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete removes an article row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.HelpArticle{}).
		Error
}

// DeleteBatch removes the given article rows.
func (r *Repository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.HelpArticle{}).
		Error
}
