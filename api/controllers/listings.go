package controllers

import (
	"net/http"
	"strings"

	"github.com/Sum1ght/schand/api/middleware"
	"github.com/Sum1ght/schand/api/responses"
	"github.com/Sum1ght/schand/api/validators"
	"github.com/Sum1ght/schand/internal/listings"
	"github.com/Sum1ght/schand/pkg/enums"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/logger"
	"github.com/Sum1ght/schand/pkg/types"
	"github.com/shopspring/decimal"
)

type createListingPayload struct {
	Name        string          `json:"name" validate:"required,max=128"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Content     *string         `json:"content"`
	ShipAddress *string         `json:"shipAddress" validate:"omitempty,max=255"`
	Image       *string         `json:"image" validate:"omitempty,max=255"`
	Category    string          `json:"category" validate:"required,max=64"`
}

type updateListingPayload struct {
	Name        *string          `json:"name" validate:"omitempty,max=128"`
	Price       *decimal.Decimal `json:"price"`
	Content     *string          `json:"content"`
	ShipAddress *string          `json:"shipAddress" validate:"omitempty,max=255"`
	Image       *string          `json:"image" validate:"omitempty,max=255"`
	Category    *string          `json:"category" validate:"omitempty,max=64"`
	Status      *string          `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	SaleStatus  *string          `json:"saleStatus" validate:"omitempty,oneof=on_sale off_sale sold"`
}

func listingFilterFromQuery(r *http.Request) (listings.Filter, error) {
	filter := listings.Filter{
		Name:     strings.TrimSpace(r.URL.Query().Get("name")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Sort:     strings.TrimSpace(r.URL.Query().Get("sort")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseListingStatus(raw)
		if err != nil {
			return listings.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("sale_status")); raw != "" {
		saleStatus, err := enums.ParseSaleStatus(raw)
		if err != nil {
			return listings.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale status")
		}
		filter.SaleStatus = &saleStatus
	}
	return filter, nil
}

// ListingFrontList serves the public storefront page. Only approved
// listings are returned no matter what the query asks for.
func ListingFrontList(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter, err := listingFilterFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		page, err := svc.FrontList(ctx, filter, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ListingDetail serves the public detail page. Anonymous viewers get the
// counts only; signed-in viewers also get their own liked/collected flags.
func ListingDetail(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "listingId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var viewer *types.Caller
		if caller, ok := middleware.CallerFromContext(ctx); ok {
			viewer = &caller
		}

		detail, err := svc.Get(ctx, viewer, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ListingList serves the management page. Non-admin callers only see
// their own rows.
func ListingList(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
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
		filter, err := listingFilterFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		page, err := svc.List(ctx, caller, filter, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ListingListAll serves the full filtered list without pagination. The
// same ownership rule as ListingList applies.
func ListingListAll(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		filter, err := listingFilterFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		items, err := svc.ListAll(ctx, caller, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ListingCreate posts a new listing owned by the caller.
func ListingCreate(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		var body createListingPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		listing, err := svc.Create(ctx, caller, listings.CreateListingInput{
			Name:        body.Name,
			Price:       body.Price,
			Content:     body.Content,
			ShipAddress: body.ShipAddress,
			Image:       body.Image,
			Category:    body.Category,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, listing)
	}
}

// ListingUpdate applies a partial edit to one listing.
func ListingUpdate(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := validators.ParseIDParam(r, "listingId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body updateListingPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := listings.UpdateListingInput{
			ID:          id,
			Name:        body.Name,
			Price:       body.Price,
			Content:     body.Content,
			ShipAddress: body.ShipAddress,
			Image:       body.Image,
			Category:    body.Category,
		}
		if body.Status != nil {
			status := enums.ListingStatus(*body.Status)
			input.Status = &status
		}
		if body.SaleStatus != nil {
			saleStatus := enums.SaleStatus(*body.SaleStatus)
			input.SaleStatus = &saleStatus
		}

		listing, err := svc.Update(ctx, caller, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

// ListingDelete removes one listing and its likes and collects.
func ListingDelete(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := validators.ParseIDParam(r, "listingId")
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

// ListingDeleteBatch removes a set of listings.
func ListingDeleteBatch(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
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
