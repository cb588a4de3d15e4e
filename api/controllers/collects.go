package controllers

import (
	"net/http"

	"github.com/Sum1ght/schand/api/middleware"
	"github.com/Sum1ght/schand/api/responses"
	"github.com/Sum1ght/schand/api/validators"
	"github.com/Sum1ght/schand/internal/collects"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/logger"
)

// CollectToggle flips the caller's collect on a listing.
func CollectToggle(svc collects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collect service unavailable"))
			return
		}
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		listingID, err := validators.ParseIDParam(r, "listingId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		outcome, err := svc.Toggle(ctx, caller, listingID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"outcome": string(outcome)})
	}
}

// CollectList returns the caller's collection page joined with the
// underlying listings.
func CollectList(svc collects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		page, err := svc.ListMine(ctx, caller, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CollectDelete removes one collect row.
func CollectDelete(svc collects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := validators.ParseIDParam(r, "collectId")
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

// CollectDeleteBatch removes a set of collect rows.
func CollectDeleteBatch(svc collects.Service, logg *logger.Logger) http.HandlerFunc {
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
