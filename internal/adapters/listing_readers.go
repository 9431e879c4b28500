// Package adapters connects modules to each other without the modules
// importing one another's services.
package adapters

import (
	"context"

	inqsvc "estate_portal_backend/internal/inquiries/service"
	invsvc "estate_portal_backend/internal/investments/service"
	listingsvc "estate_portal_backend/internal/listings/service"

	"github.com/google/uuid"
)

// ListingSource is the part of the listings service other modules read.
type ListingSource interface {
	ActiveSummary(ctx context.Context, id uuid.UUID) (listingsvc.Summary, error)
	RecordInquiry(ctx context.Context, id uuid.UUID) error
}

// InquiryListingReader adapts the listings service for the inquiries domain.
type InquiryListingReader struct {
	listings ListingSource
}

// NewInquiryListingReader creates a new inquiries listing adapter.
func NewInquiryListingReader(listings ListingSource) *InquiryListingReader {
	return &InquiryListingReader{listings: listings}
}

// ActiveListing resolves an active listing. Non-active listings are not found.
func (a *InquiryListingReader) ActiveListing(ctx context.Context, id uuid.UUID) (inqsvc.ListingSummary, error) {
	s, err := a.listings.ActiveSummary(ctx, id)
	if err != nil {
		return inqsvc.ListingSummary{}, err
	}
	return inqsvc.ListingSummary{ID: s.ID, Name: s.Name, BuilderID: s.BuilderID, ContactEmail: s.ContactEmail}, nil
}

// RecordInquiry bumps the listing's inquiry counter.
func (a *InquiryListingReader) RecordInquiry(ctx context.Context, id uuid.UUID) error {
	return a.listings.RecordInquiry(ctx, id)
}

var _ inqsvc.ListingReader = (*InquiryListingReader)(nil)

// InvestmentListingReader adapts the listings service for the investments
// domain.
type InvestmentListingReader struct {
	listings ListingSource
}

// NewInvestmentListingReader creates a new investments listing adapter.
func NewInvestmentListingReader(listings ListingSource) *InvestmentListingReader {
	return &InvestmentListingReader{listings: listings}
}

// ActiveListing resolves an active listing.
func (a *InvestmentListingReader) ActiveListing(ctx context.Context, id uuid.UUID) (invsvc.ListingSummary, error) {
	s, err := a.listings.ActiveSummary(ctx, id)
	if err != nil {
		return invsvc.ListingSummary{}, err
	}
	return invsvc.ListingSummary{ID: s.ID, Name: s.Name, BuilderID: s.BuilderID}, nil
}

var _ invsvc.ListingReader = (*InvestmentListingReader)(nil)
