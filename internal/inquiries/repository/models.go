package repository

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry statuses. An inquiry only moves forward.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

// Inquiry is a customer's question about a listing, addressed to its builder.
type Inquiry struct {
	ID               uuid.UUID
	ListingID        uuid.UUID
	ListingName      string
	BuilderID        uuid.UUID
	CustomerID       *uuid.UUID
	Name             string
	Email            string
	Phone            string
	InquiryType      string
	Budget           string
	Message          string
	PreferredContact string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ListParams filters a builder's inbox.
type ListParams struct {
	BuilderID uuid.UUID
	ListingID *uuid.UUID
	Status    string
	Search    string
	From      *time.Time
	To        *time.Time
	Offset    int
	Limit     int
}
