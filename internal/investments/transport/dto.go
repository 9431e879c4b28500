package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateInvestmentRequest struct {
	ListingID      string `json:"listingId" validate:"required,uuid"`
	Amount         int64  `json:"amount" validate:"required,gt=0"`
	InvestmentType string `json:"investmentType" validate:"omitempty,oneof=booking partial full"`
	Notes          string `json:"notes" validate:"max=2000"`
}

type DocumentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	URL  string `json:"url" validate:"required,url,max=500"`
}

type UpdateProgressRequest struct {
	Stage      string            `json:"stage" validate:"required,oneof=booking foundation structure finishing ready"`
	Percentage int               `json:"percentage" validate:"min=0,max=100"`
	Notes      string            `json:"notes" validate:"max=2000"`
	Documents  []DocumentRequest `json:"documents" validate:"omitempty,max=20,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type ReturnsRequest struct {
	PurchasePrice float64 `json:"purchasePrice" validate:"required,gt=0"`
	CurrentPrice  float64 `json:"currentPrice" validate:"gte=0"`
	Years         float64 `json:"years" validate:"required,gt=0,lte=100"`
}

type ReturnsResponse struct {
	TotalReturn           float64 `json:"totalReturn"`
	TotalReturnPercentage float64 `json:"totalReturnPercentage"`
	AnnualizedReturn      float64 `json:"annualizedReturn"`
}

type DocumentResponse struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type ProgressResponse struct {
	Stage       string    `json:"stage"`
	Percentage  int       `json:"percentage"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type InvestmentResponse struct {
	ID             uuid.UUID          `json:"id"`
	ListingID      uuid.UUID          `json:"listingId"`
	ListingName    string             `json:"listingName"`
	CustomerID     uuid.UUID          `json:"customerId"`
	Amount         int64              `json:"amount"`
	AmountLabel    string             `json:"amountLabel"`
	InvestmentType string             `json:"investmentType"`
	Status         string             `json:"status"`
	Progress       ProgressResponse   `json:"progress"`
	Notes          string             `json:"notes,omitempty"`
	Documents      []DocumentResponse `json:"documents"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type InvestmentListResponse struct {
	Items []InvestmentResponse `json:"items"`
}

type PortfolioResponse struct {
	TotalInvested      int64                `json:"totalInvested"`
	TotalInvestedLabel string               `json:"totalInvestedLabel"`
	ActiveCount        int                  `json:"activeCount"`
	CompletedCount     int                  `json:"completedCount"`
	StageCounts        map[string]int       `json:"stageCounts"`
	Items              []InvestmentResponse `json:"items"`
}
