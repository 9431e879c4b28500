// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"estate_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Listing Domain Events
// =============================================================================

// ListingChange says what happened to a listing.
type ListingChange string

const (
	ListingCreated       ListingChange = "created"
	ListingUpdated       ListingChange = "updated"
	ListingStatusChanged ListingChange = "status_changed"
	ListingDeleted       ListingChange = "deleted"
)

// ListingChanged is published after any write that can alter the browsable
// snapshot. Subscribers drop cached snapshots.
type ListingChanged struct {
	BaseEvent
	ListingID uuid.UUID     `json:"listingId"`
	BuilderID uuid.UUID     `json:"builderId"`
	Change    ListingChange `json:"change"`
}

func (e ListingChanged) EventName() string { return "listings.listing.changed" }

// =============================================================================
// Inquiry Domain Events
// =============================================================================

// InquirySubmitted is published when a customer sends an inquiry.
type InquirySubmitted struct {
	BaseEvent
	InquiryID     uuid.UUID `json:"inquiryId"`
	ListingID     uuid.UUID `json:"listingId"`
	ListingName   string    `json:"listingName"`
	BuilderID     uuid.UUID `json:"builderId"`
	BuilderEmail  string    `json:"builderEmail,omitempty"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	Message       string    `json:"message"`
}

func (e InquirySubmitted) EventName() string { return "inquiries.inquiry.submitted" }

// =============================================================================
// Investment Domain Events
// =============================================================================

// InvestmentCreated is published when a customer records an investment.
type InvestmentCreated struct {
	BaseEvent
	InvestmentID uuid.UUID `json:"investmentId"`
	ListingID    uuid.UUID `json:"listingId"`
	CustomerID   uuid.UUID `json:"customerId"`
	Amount       int64     `json:"amount"`
}

func (e InvestmentCreated) EventName() string { return "investments.investment.created" }

// InvestmentProgressUpdated is published when a builder moves construction
// progress forward.
type InvestmentProgressUpdated struct {
	BaseEvent
	InvestmentID uuid.UUID `json:"investmentId"`
	CustomerID   uuid.UUID `json:"customerId"`
	Stage        string    `json:"stage"`
	Percentage   int       `json:"percentage"`
}

func (e InvestmentProgressUpdated) EventName() string { return "investments.investment.progress_updated" }
