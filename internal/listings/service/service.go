// Package service implements the listing use cases: browsing the active
// snapshot through the filter, sort and paginate pipeline, and builder
// management of their own listings.
package service

import (
	"context"
	"strings"
	"time"

	"estate_portal_backend/internal/adapters/storage"
	"estate_portal_backend/internal/events"
	"estate_portal_backend/internal/listings/cache"
	"estate_portal_backend/internal/listings/domain"
	"estate_portal_backend/internal/listings/repository"
	"estate_portal_backend/internal/listings/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/money"

	"github.com/google/uuid"
)

const (
	featuredLimit = 6
	upcomingLimit = 8
)

const msgListingNotFound = "listing not found"

// Actor is the authenticated caller of a builder operation.
type Actor struct {
	UserID uuid.UUID
	Name   string
	Admin  bool
}

// Service provides business logic for listings.
type Service struct {
	repo      repository.Repository
	snapshots *cache.SnapshotStore
	memo      domain.Memo
	bus       events.Bus
	storage   storage.StorageService
	bucket    string
	baseURL   string
	pageSize  int
	log       *logger.Logger
	now       func() time.Time
}

// New creates a new listings service.
func New(repo repository.Repository, snapshots *cache.SnapshotStore, bus events.Bus, cfg config.ListingsConfig, log *logger.Logger) *Service {
	pageSize := cfg.GetDefaultPageSize()
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		bus:       bus,
		baseURL:   strings.TrimRight(cfg.GetAppBaseURL(), "/"),
		pageSize:  pageSize,
		log:       log,
		now:       time.Now,
	}
}

// SetStorage enables presigned media uploads.
func (s *Service) SetStorage(svc storage.StorageService, bucket string) {
	s.storage = svc
	s.bucket = bucket
}

func (s *Service) snapshot(ctx context.Context) (domain.Snapshot, error) {
	return s.snapshots.Get(ctx, func(ctx context.Context) ([]domain.Listing, error) {
		return s.repo.ListByStatus(ctx, domain.StatusActive)
	})
}

// InvalidateSnapshot drops the cached active set and the memoized result.
func (s *Service) InvalidateSnapshot(ctx context.Context) error {
	s.memo.Reset()
	return s.snapshots.Invalidate(ctx)
}

// Browse runs the listing pipeline over the active snapshot.
func (s *Service) Browse(ctx context.Context, req transport.BrowseRequest) (transport.ListingPageResponse, error) {
	criteria, err := req.Criteria()
	if err != nil {
		return transport.ListingPageResponse{}, err
	}
	key, err := domain.ParseSortKey(req.Sort)
	if err != nil {
		return transport.ListingPageResponse{}, err
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = s.pageSize
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return transport.ListingPageResponse{}, err
	}

	page := s.memo.Page(snap, criteria, key, req.Page, pageSize)
	return transport.ListingPageResponse{
		Items:      toListingResponses(page.Items),
		TotalCount: page.TotalCount,
		PageCount:  page.PageCount,
		Page:       page.PageNumber,
		PageSize:   page.PageSize,
		Sort:       key,
	}, nil
}

// Featured returns up to six featured listings in snapshot order.
func (s *Service) Featured(ctx context.Context) (transport.ListingListResponse, error) {
	return s.pick(ctx, featuredLimit, func(l domain.Listing) bool { return l.Featured })
}

// Upcoming returns up to eight listings whose possession date is still ahead.
func (s *Service) Upcoming(ctx context.Context) (transport.ListingListResponse, error) {
	today := s.now()
	return s.pick(ctx, upcomingLimit, func(l domain.Listing) bool { return l.PossessionDate.IsAfterDay(today) })
}

// ByBuilder returns the active listings of one builder.
func (s *Service) ByBuilder(ctx context.Context, builderID uuid.UUID) (transport.ListingListResponse, error) {
	return s.pick(ctx, 0, func(l domain.Listing) bool { return l.BuilderID == builderID })
}

func (s *Service) pick(ctx context.Context, limit int, keep func(domain.Listing) bool) (transport.ListingListResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return transport.ListingListResponse{}, err
	}

	items := make([]transport.ListingResponse, 0)
	for _, l := range snap.Listings {
		if limit > 0 && len(items) == limit {
			break
		}
		if keep(l) {
			items = append(items, toListingResponse(l))
		}
	}
	return transport.ListingListResponse{Items: items}, nil
}

// Facets returns the filter options present in the active snapshot.
func (s *Service) Facets(ctx context.Context) (transport.FacetsResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return transport.FacetsResponse{}, err
	}
	return domain.BuildFacets(snap.Listings), nil
}

// Get returns an active listing and counts the view.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.ListingResponse, error) {
	listing, err := s.active(ctx, id)
	if err != nil {
		return transport.ListingResponse{}, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.log.WithContext(ctx).DatabaseError("increment listing views", err)
	} else {
		listing.Views++
	}
	return toListingResponse(listing), nil
}

func (s *Service) active(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Listing{}, err
	}
	if listing.Status != domain.StatusActive {
		return domain.Listing{}, apperr.NotFound(msgListingNotFound)
	}
	return listing, nil
}

// StartingPrice returns the minimum price of an active listing.
func (s *Service) StartingPrice(ctx context.Context, id uuid.UUID) (int64, error) {
	listing, err := s.active(ctx, id)
	if err != nil {
		return 0, err
	}
	return listing.PriceRange.Min, nil
}

// Summary is the slice of a listing other modules need.
type Summary struct {
	ID           uuid.UUID
	Name         string
	BuilderID    uuid.UUID
	BuilderName  string
	ContactEmail string
	PriceMin     int64
}

// ActiveSummary describes an active listing.
func (s *Service) ActiveSummary(ctx context.Context, id uuid.UUID) (Summary, error) {
	listing, err := s.active(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		ID:           listing.ID,
		Name:         listing.Name,
		BuilderID:    listing.BuilderID,
		BuilderName:  listing.BuilderName,
		ContactEmail: listing.ContactEmail,
		PriceMin:     listing.PriceRange.Min,
	}, nil
}

// RecordInquiry bumps the inquiry counter of a listing.
func (s *Service) RecordInquiry(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementInquiries(ctx, id)
}

func toListingResponses(listings []domain.Listing) []transport.ListingResponse {
	out := make([]transport.ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

func toListingResponse(l domain.Listing) transport.ListingResponse {
	return transport.ListingResponse{Listing: l, PriceLabel: priceLabel(l.PriceRange)}
}

func priceLabel(p domain.PriceRange) string {
	if p.Min == p.Max {
		return money.FormatPrice(p.Min)
	}
	return money.FormatPrice(p.Min) + " - " + money.FormatPrice(p.Max)
}
