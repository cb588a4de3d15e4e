package help

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sum1ght/schand/pkg/db/models"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

// ArticleDTO is one help article.
type ArticleDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateArticleInput is the payload for publishing an article.
type CreateArticleInput struct {
	Title   string
	Content string
	Image   *string
}

// UpdateArticleInput carries a partial article edit.
type UpdateArticleInput struct {
	ID      int64
	Title   *string
	Content *string
	Image   *string
}

type articleStore interface {
	FindByID(ctx context.Context, id int64) (*models.HelpArticle, error)
	List(ctx context.Context, title string, params pagination.Params) ([]models.HelpArticle, int64, error)
	Create(ctx context.Context, article *models.HelpArticle) error
	Update(ctx context.Context, article *models.HelpArticle) error
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

// Service exposes help article management. Reads are public; writes are
// admin only.
type Service interface {
	Get(ctx context.Context, id int64) (ArticleDTO, error)
	List(ctx context.Context, title string, params pagination.Params) (pagination.Page[ArticleDTO], error)
	Create(ctx context.Context, caller types.Caller, input CreateArticleInput) (ArticleDTO, error)
	Update(ctx context.Context, caller types.Caller, input UpdateArticleInput) (ArticleDTO, error)
	Delete(ctx context.Context, caller types.Caller, id int64) error
	DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error
}

type service struct {
	store articleStore
}

// NewService builds a help service backed by the provided store.
func NewService(store articleStore) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "article store is required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, id int64) (ArticleDTO, error) {
	article, err := s.loadArticle(ctx, id)
	if err != nil {
		return ArticleDTO{}, err
	}
	return toDTO(*article), nil
}

func (s *service) List(ctx context.Context, title string, params pagination.Params) (pagination.Page[ArticleDTO], error) {
	rows, total, err := s.store.List(ctx, strings.TrimSpace(title), params)
	if err != nil {
		return pagination.Page[ArticleDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list articles")
	}
	items := make([]ArticleDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDTO(row))
	}
	return pagination.NewPage(items, total, params), nil
}

func (s *service) Create(ctx context.Context, caller types.Caller, input CreateArticleInput) (ArticleDTO, error) {
	if !caller.IsAdmin() {
		return ArticleDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return ArticleDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title and content are required")
	}
	article := models.HelpArticle{
		Title:   strings.TrimSpace(input.Title),
		Content: input.Content,
		Image:   input.Image,
	}
	if err := s.store.Create(ctx, &article); err != nil {
		return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create article")
	}
	return toDTO(article), nil
}

func (s *service) Update(ctx context.Context, caller types.Caller, input UpdateArticleInput) (ArticleDTO, error) {
	if !caller.IsAdmin() {
		return ArticleDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	article, err := s.loadArticle(ctx, input.ID)
	if err != nil {
		return ArticleDTO{}, err
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return ArticleDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title must not be empty")
		}
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.Image != nil {
		article.Image = input.Image
	}
	if err := s.store.Update(ctx, article); err != nil {
		return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update article")
	}
	return toDTO(*article), nil
}

func (s *service) Delete(ctx context.Context, caller types.Caller, id int64) error {
	if !caller.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if _, err := s.loadArticle(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete article")
	}
	return nil
}

func (s *service) DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error {
	if !caller.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "ids are required")
	}
	if err := s.store.DeleteBatch(ctx, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete articles")
	}
	return nil
}

func (s *service) loadArticle(ctx context.Context, id int64) (*models.HelpArticle, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "article id is required")
	}
	article, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "article not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load article")
	}
	return article, nil
}

func toDTO(article models.HelpArticle) ArticleDTO {
	return ArticleDTO{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		Image:     article.Image,
		CreatedAt: article.CreatedAt,
	}
}
