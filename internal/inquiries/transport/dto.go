package transport

import (
	"time"

	"github.com/google/uuid"
)

type SubmitInquiryRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=120"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Phone            string `json:"phone" validate:"required,min=6,max=32"`
	InquiryType      string `json:"inquiryType" validate:"omitempty,oneof=site-visit info-request price-negotiation emi-details legal-clearance other"`
	Budget           string `json:"budget" validate:"omitempty,oneof=50L-1Cr 1Cr-2Cr 2Cr-5Cr 5Cr+"`
	Message          string `json:"message" validate:"max=2000"`
	PreferredContact string `json:"preferredContact" validate:"omitempty,oneof=email phone whatsapp"`
}

type ListInquiriesRequest struct {
	Status    string `form:"status" validate:"omitempty,oneof=new contacted closed"`
	ListingID string `form:"listingId" validate:"omitempty,uuid"`
	Search    string `form:"search" validate:"max=100"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

type InquiryResponse struct {
	ID               uuid.UUID `json:"id"`
	ListingID        uuid.UUID `json:"listingId"`
	ListingName      string    `json:"listingName"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	InquiryType      string    `json:"inquiryType"`
	Budget           string    `json:"budget,omitempty"`
	Message          string    `json:"message"`
	PreferredContact string    `json:"preferredContact"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type InquiryListResponse struct {
	Items      []InquiryResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// ExportInquiriesRequest selects the rows of a CSV export. Dates are
// YYYY-MM-DD in the requested timezone.
type ExportInquiriesRequest struct {
	Status    string `form:"status" validate:"omitempty,oneof=new contacted closed"`
	ListingID string `form:"listingId" validate:"omitempty,uuid"`
	FromDate  string `form:"fromDate" validate:"omitempty,datetime=2006-01-02"`
	ToDate    string `form:"toDate" validate:"omitempty,datetime=2006-01-02"`
	Timezone  string `form:"timezone" validate:"max=64"`
}
