package repository

import (
	"context"

	"estate_portal_backend/internal/listings/domain"

	"github.com/google/uuid"
)

// Repository persists listings.
type Repository interface {
	// ListByStatus returns listings in the given status, featured first and
	// then newest first. This order is the "featured" sort of the grid.
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Listing, error)
	// ListByBuilder returns every listing the builder owns, drafts included.
	ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]domain.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error)
	Create(ctx context.Context, listing domain.Listing) (domain.Listing, error)
	Update(ctx context.Context, listing domain.Listing) (domain.Listing, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementInquiries(ctx context.Context, id uuid.UUID) error
}
