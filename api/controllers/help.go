package controllers

import (
	"net/http"
	"strings"

	"github.com/Sum1ght/schand/api/middleware"
	"github.com/Sum1ght/schand/api/responses"
	"github.com/Sum1ght/schand/api/validators"
	"github.com/Sum1ght/schand/internal/help"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/logger"
)

type createArticlePayload struct {
	Title   string  `json:"title" validate:"required,max=128"`
	Content string  `json:"content" validate:"required"`
	Image   *string `json:"image" validate:"omitempty,max=255"`
}

type updateArticlePayload struct {
	Title   *string `json:"title" validate:"omitempty,max=128"`
	Content *string `json:"content"`
	Image   *string `json:"image" validate:"omitempty,max=255"`
}

// HelpList serves the public help index with optional title search.
func HelpList(svc help.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "help service unavailable"))
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		title := strings.TrimSpace(r.URL.Query().Get("title"))
		page, err := svc.List(ctx, title, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// HelpGet serves one public help article.
func HelpGet(svc help.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "help service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "articleId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		article, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, article)
	}
}

// HelpCreate publishes a new article.
func HelpCreate(svc help.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		var body createArticlePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		article, err := svc.Create(ctx, caller, help.CreateArticleInput{
			Title:   body.Title,
			Content: body.Content,
			Image:   body.Image,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, article)
	}
}

// HelpUpdate applies a partial edit to one article.
func HelpUpdate(svc help.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := validators.ParseIDParam(r, "articleId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var body updateArticlePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		article, err := svc.Update(ctx, caller, help.UpdateArticleInput{
			ID:      id,
			Title:   body.Title,
			Content: body.Content,
			Image:   body.Image,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, article)
	}
}

// HelpDelete removes one article.
func HelpDelete(svc help.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := validators.ParseIDParam(r, "articleId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, caller, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// HelpDeleteBatch removes a set of articles.
func HelpDeleteBatch(svc help.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		var body idBatchPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteBatch(ctx, caller, body.IDs); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
