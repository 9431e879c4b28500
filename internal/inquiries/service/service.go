// Package service implements customer inquiries and the builder inbox.
package service

import (
	"context"
	"strings"

	"estate_portal_backend/internal/events"
	"estate_portal_backend/internal/inquiries/repository"
	"estate_portal_backend/internal/inquiries/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/phone"
	"estate_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListingSummary is what an inquiry needs to know about its listing.
type ListingSummary struct {
	ID           uuid.UUID
	Name         string
	BuilderID    uuid.UUID
	ContactEmail string
}

// ListingReader resolves active listings and records inquiry counts.
type ListingReader interface {
	ActiveListing(ctx context.Context, id uuid.UUID) (ListingSummary, error)
	RecordInquiry(ctx context.Context, id uuid.UUID) error
}

// Service provides business logic for inquiries.
type Service struct {
	repo     repository.Repository
	listings ListingReader
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new inquiries service.
func New(repo repository.Repository, listings ListingReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, listings: listings, bus: bus, log: log}
}

// Submit records an inquiry from a customer and notifies the builder.
func (s *Service) Submit(ctx context.Context, customerID uuid.UUID, listingID uuid.UUID, req transport.SubmitInquiryRequest) (transport.InquiryResponse, error) {
	listing, err := s.listings.ActiveListing(ctx, listingID)
	if err != nil {
		return transport.InquiryResponse{}, err
	}

	normalizedPhone, err := phone.Parse(req.Phone)
	if err != nil {
		return transport.InquiryResponse{}, apperr.Validation("invalid phone number").
			WithCode("INVALID_PHONE").
			WithDetails(map[string]string{"phone": "not a valid phone number"})
	}

	in := repository.Inquiry{
		ListingID:        listing.ID,
		ListingName:      listing.Name,
		BuilderID:        listing.BuilderID,
		CustomerID:       &customerID,
		Name:             sanitize.Line(req.Name),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:            normalizedPhone,
		InquiryType:      valueOr(req.InquiryType, "info-request"),
		Budget:           req.Budget,
		Message:          sanitize.Text(req.Message),
		PreferredContact: valueOr(req.PreferredContact, "email"),
		Status:           repository.StatusNew,
	}
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return transport.InquiryResponse{}, err
	}

	if err := s.listings.RecordInquiry(ctx, listing.ID); err != nil {
		s.log.WithContext(ctx).DatabaseError("record listing inquiry", err)
	}

	s.bus.Publish(ctx, events.InquirySubmitted{
		BaseEvent:     events.NewBaseEvent(),
		InquiryID:     created.ID,
		ListingID:     created.ListingID,
		ListingName:   created.ListingName,
		BuilderID:     created.BuilderID,
		BuilderEmail:  listing.ContactEmail,
		CustomerName:  created.Name,
		CustomerEmail: created.Email,
		CustomerPhone: created.Phone,
		Message:       created.Message,
	})

	s.log.Info("inquiry submitted", "id", created.ID, "listingId", created.ListingID)
	return toResponse(created), nil
}

// ListForBuilder returns one page of the builder's inbox.
func (s *Service) ListForBuilder(ctx context.Context, builderID uuid.UUID, req transport.ListInquiriesRequest) (transport.InquiryListResponse, error) {
	page := max(req.Page, 1)
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	params := repository.ListParams{
		BuilderID: builderID,
		Status:    req.Status,
		Search:    strings.TrimSpace(req.Search),
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
	}
	if req.ListingID != "" {
		id, err := uuid.Parse(req.ListingID)
		if err != nil {
			return transport.InquiryListResponse{}, apperr.Validation("invalid listing id")
		}
		params.ListingID = &id
	}

	items, total, err := s.repo.ListForBuilder(ctx, params)
	if err != nil {
		return transport.InquiryListResponse{}, err
	}

	out := make([]transport.InquiryResponse, 0, len(items))
	for _, in := range items {
		out = append(out, toResponse(in))
	}
	return transport.InquiryListResponse{
		Items:      out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// ListForCustomer returns the inquiries a customer has sent.
func (s *Service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]transport.InquiryResponse, error) {
	items, err := s.repo.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.InquiryResponse, 0, len(items))
	for _, in := range items {
		out = append(out, toResponse(in))
	}
	return out, nil
}

var statusRank = map[string]int{
	repository.StatusNew:       0,
	repository.StatusContacted: 1,
	repository.StatusClosed:    2,
}

// UpdateStatus moves an inquiry forward. admin may act on any builder's inbox.
func (s *Service) UpdateStatus(ctx context.Context, builderID uuid.UUID, admin bool, id uuid.UUID, req transport.UpdateInquiryStatusRequest) (transport.InquiryResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.InquiryResponse{}, err
	}
	if !admin && current.BuilderID != builderID {
		return transport.InquiryResponse{}, apperr.NotFound("inquiry not found")
	}

	if current.Status == req.Status {
		return toResponse(current), nil
	}
	if statusRank[req.Status] < statusRank[current.Status] {
		return transport.InquiryResponse{}, apperr.Conflict("inquiry cannot move from " + current.Status + " to " + req.Status).
			WithCode("INVALID_STATUS_TRANSITION")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, req.Status)
	if err != nil {
		return transport.InquiryResponse{}, err
	}
	return toResponse(updated), nil
}

func toResponse(in repository.Inquiry) transport.InquiryResponse {
	return transport.InquiryResponse{
		ID:               in.ID,
		ListingID:        in.ListingID,
		ListingName:      in.ListingName,
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		InquiryType:      in.InquiryType,
		Budget:           in.Budget,
		Message:          in.Message,
		PreferredContact: in.PreferredContact,
		Status:           in.Status,
		CreatedAt:        in.CreatedAt,
		UpdatedAt:        in.UpdatedAt,
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
