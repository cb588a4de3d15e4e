package controllers

import (
	"net/http"

	"github.com/Sum1ght/schand/api/middleware"
	"github.com/Sum1ght/schand/api/responses"
	"github.com/Sum1ght/schand/api/validators"
	"github.com/Sum1ght/schand/internal/likes"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/logger"
)

// LikeToggle flips the caller's like on a listing and reports which way
// it went.
func LikeToggle(svc likes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "like service unavailable"))
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
