package listings

import (
	"context"
	"errors"
	"strings"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/pagination"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

type listingStore interface {
	FindByID(ctx context.Context, id int64) (*models.Listing, error)
	List(ctx context.Context, filter Filter, params pagination.Params) ([]models.Listing, int64, error)
	ListAll(ctx context.Context, filter Filter) ([]models.Listing, error)
	Create(ctx context.Context, listing *models.Listing) error
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id int64) error
	IncrementReadCount(ctx context.Context, id int64) error
}

type likeCounter interface {
	Exists(ctx context.Context, userID, listingID int64) (bool, error)
	CountByListing(ctx context.Context, listingID int64) (int64, error)
	DeleteByListing(ctx context.Context, listingID int64) error
}

type collectCounter interface {
	Exists(ctx context.Context, userID, listingID int64) (bool, error)
	CountByListing(ctx context.Context, listingID int64) (int64, error)
	DeleteByListing(ctx context.Context, listingID int64) error
}

type sellerLoader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// ServiceParams groups dependencies for the listing service.
type ServiceParams struct {
	ListingRepo listingStore
	Likes       likeCounter
	Collects    collectCounter
	Sellers     sellerLoader
}

// Service exposes business rules for listing management and the storefront.
type Service interface {
	Get(ctx context.Context, viewer *types.Caller, id int64) (ListingDetailDTO, error)
	List(ctx context.Context, caller types.Caller, filter Filter, params pagination.Params) (pagination.Page[ListingDTO], error)
	ListAll(ctx context.Context, caller types.Caller, filter Filter) ([]ListingDTO, error)
	FrontList(ctx context.Context, filter Filter, params pagination.Params) (pagination.Page[FrontListingDTO], error)
	Create(ctx context.Context, caller types.Caller, input CreateListingInput) (ListingDTO, error)
	Update(ctx context.Context, caller types.Caller, input UpdateListingInput) (ListingDTO, error)
	Delete(ctx context.Context, caller types.Caller, id int64) error
	DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error
}

type service struct {
	repo     listingStore
	likes    likeCounter
	collects collectCounter
	sellers  sellerLoader
}

// NewService builds a listing service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ListingRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing repo is required")
	}
	if params.Likes == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "like counter is required")
	}
	if params.Collects == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collect counter is required")
	}
	if params.Sellers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller loader is required")
	}
	return &service{
		repo:     params.ListingRepo,
		likes:    params.Likes,
		collects: params.Collects,
		sellers:  params.Sellers,
	}, nil
}

// Get returns the listing detail with per-viewer like and collect state.
// Every read bumps the listing's view counter.
func (s *service) Get(ctx context.Context, viewer *types.Caller, id int64) (ListingDetailDTO, error) {
	listing, err := s.loadListing(ctx, id)
	if err != nil {
		return ListingDetailDTO{}, err
	}
	if err := s.repo.IncrementReadCount(ctx, id); err != nil {
		return ListingDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bump read count")
	}
	listing.ReadCount++

	detail := ListingDetailDTO{ListingDTO: toDTO(*listing)}

	seller, err := s.sellers.FindByID(ctx, listing.UserID)
	if err == nil && seller != nil {
		detail.SellerName = seller.Name
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ListingDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}

	if detail.LikeCount, err = s.likes.CountByListing(ctx, id); err != nil {
		return ListingDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count likes")
	}
	if detail.CollectCount, err = s.collects.CountByListing(ctx, id); err != nil {
		return ListingDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count collects")
	}

	if viewer != nil {
		if detail.Liked, err = s.likes.Exists(ctx, viewer.ID, id); err != nil {
			return ListingDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check like")
		}
		if detail.Collected, err = s.collects.Exists(ctx, viewer.ID, id); err != nil {
			return ListingDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check collect")
		}
	}
	return detail, nil
}

// List returns the management page. Non-admin callers only ever see their
// own listings regardless of the submitted filter.
func (s *service) List(ctx context.Context, caller types.Caller, filter Filter, params pagination.Params) (pagination.Page[ListingDTO], error) {
	if !caller.IsAdmin() {
		filter.UserID = &caller.ID
	}
	rows, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Page[ListingDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list listings")
	}
	items := make([]ListingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDTO(row))
	}
	return pagination.NewPage(items, total, params), nil
}

// ListAll returns every matching listing at once for exports and pickers.
// The same ownership rule as List applies to non-admin callers.
func (s *service) ListAll(ctx context.Context, caller types.Caller, filter Filter) ([]ListingDTO, error) {
	if !caller.IsAdmin() {
		filter.UserID = &caller.ID
	}
	rows, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list listings")
	}
	items := make([]ListingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDTO(row))
	}
	return items, nil
}

// FrontList returns the public storefront page. Only approved listings are
// visible and each row carries its like count.
func (s *service) FrontList(ctx context.Context, filter Filter, params pagination.Params) (pagination.Page[FrontListingDTO], error) {
	approved := enums.ListingStatusApproved
	filter.Status = &approved
	filter.UserID = nil

	rows, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Page[FrontListingDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list listings")
	}

	items := make([]FrontListingDTO, 0, len(rows))
	for _, row := range rows {
		likeCount, err := s.likes.CountByListing(ctx, row.ID)
		if err != nil {
			return pagination.Page[FrontListingDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count likes")
		}
		items = append(items, FrontListingDTO{
			ID:         row.ID,
			Name:       row.Name,
			Price:      row.Price,
			Image:      row.Image,
			Category:   row.Category,
			SaleStatus: row.SaleStatus,
			ReadCount:  row.ReadCount,
			LikeCount:  likeCount,
			CreatedAt:  row.CreatedAt,
		})
	}
	return pagination.NewPage(items, total, params), nil
}

// Create posts a new listing owned by the caller. New listings always start
// unaudited with a zero view counter.
func (s *service) Create(ctx context.Context, caller types.Caller, input CreateListingInput) (ListingDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return ListingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return ListingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	listing := models.Listing{
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Content:     input.Content,
		ShipAddress: input.ShipAddress,
		Image:       input.Image,
		Category:    input.Category,
		Status:      enums.ListingStatusPending,
		SaleStatus:  enums.SaleStatusOnSale,
		UserID:      caller.ID,
		ReadCount:   0,
	}
	if err := s.repo.Create(ctx, &listing); err != nil {
		return ListingDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create listing")
	}
	return toDTO(listing), nil
}

// Update applies a partial edit. Non-admin callers may only edit their own
// listings, and their edits always send the listing back to audit.
func (s *service) Update(ctx context.Context, caller types.Caller, input UpdateListingInput) (ListingDTO, error) {
	listing, err := s.loadListing(ctx, input.ID)
	if err != nil {
		return ListingDTO{}, err
	}
	if !caller.IsAdmin() && listing.UserID != caller.ID {
		return ListingDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "listing belongs to another user")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return ListingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		listing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return ListingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		listing.Price = *input.Price
	}
	if input.Content != nil {
		listing.Content = input.Content
	}
	if input.ShipAddress != nil {
		listing.ShipAddress = input.ShipAddress
	}
	if input.Image != nil {
		listing.Image = input.Image
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}
	if input.SaleStatus != nil {
		if !input.SaleStatus.IsValid() {
			return ListingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid sale status")
		}
		listing.SaleStatus = *input.SaleStatus
	}

	if caller.IsAdmin() {
		if input.Status != nil {
			if !input.Status.IsValid() {
				return ListingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
			}
			listing.Status = *input.Status
		}
	} else {
		listing.Status = enums.ListingStatusPending
	}

	if err := s.repo.Update(ctx, listing); err != nil {
		return ListingDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update listing")
	}
	return toDTO(*listing), nil
}

// Delete removes a listing along with its likes and collects.
func (s *service) Delete(ctx context.Context, caller types.Caller, id int64) error {
	listing, err := s.loadListing(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && listing.UserID != caller.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "listing belongs to another user")
	}
	if err := s.likes.DeleteByListing(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete likes")
	}
	if err := s.collects.DeleteByListing(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete collects")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete listing")
	}
	return nil
}

// DeleteBatch removes a set of listings one by one so ownership checks and
// like/collect cleanup apply to each.
func (s *service) DeleteBatch(ctx context.Context, caller types.Caller, ids []int64) error {
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "ids are required")
	}
	for _, id := range ids {
		if err := s.Delete(ctx, caller, id); err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *service) loadListing(ctx context.Context, id int64) (*models.Listing, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	return listing, nil
}
