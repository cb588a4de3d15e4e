package controllers

import (
	"net/http"

	"github.com/Sum1ght/schand/api/middleware"
	"github.com/Sum1ght/schand/api/responses"
	"github.com/Sum1ght/schand/api/validators"
	"github.com/Sum1ght/schand/internal/addresses"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/logger"
)

type createAddressPayload struct {
	Consignee string `json:"consignee" validate:"required,max=64"`
	Address   string `json:"address" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"required,max=32"`
}

type updateAddressPayload struct {
	Consignee *string `json:"consignee" validate:"omitempty,max=64"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
}

// AddressList returns the caller's address book. Admins see every row.
func AddressList(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
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
		page, err := svc.List(ctx, caller, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AddressGet returns one address the caller owns.
func AddressGet(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := validators.ParseIDParam(r, "addressId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		address, err := svc.Get(ctx, caller, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, address)
	}
}

// AddressCreate saves a new delivery address owned by the caller.
func AddressCreate(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		var body createAddressPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		address, err := svc.Create(ctx, caller, addresses.CreateAddressInput{
			Consignee: body.Consignee,
			Address:   body.Address,
			Phone:     body.Phone,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, address)
	}
}

// AddressUpdate applies a partial edit to one address.
func AddressUpdate(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := validators.ParseIDParam(r, "addressId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var body updateAddressPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		address, err := svc.Update(ctx, caller, addresses.UpdateAddressInput{
			ID:        id,
			Consignee: body.Consignee,
			Address:   body.Address,
			Phone:     body.Phone,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, address)
	}
}

// AddressDelete removes one address.
func AddressDelete(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := validators.ParseIDParam(r, "addressId")
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

// AddressDeleteBatch removes a set of addresses.
func AddressDeleteBatch(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
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
