// Package transport defines the request and response shapes of the loans API.
package transport

import "github.com/google/uuid"

// EMIRequest carries the three calculator inputs. Range checks happen in the
// calculator so every invalid combination reports INVALID_LOAN_PARAMETERS.
type EMIRequest struct {
	Principal         float64  `json:"principal"`
	AnnualRatePercent float64  `json:"annualRatePercent"`
	TenureYears       int      `json:"tenureYears"`
	PropertyPrice     *float64 `json:"propertyPrice,omitempty" validate:"omitempty,gt=0"`
}

// EMIExact exposes the unrounded values for clients that do their own display.
type EMIExact struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

type EMIResponse struct {
	MonthlyPayment          int64              `json:"monthlyPayment"`
	TotalPayment            int64              `json:"totalPayment"`
	TotalInterest           int64              `json:"totalInterest"`
	MonthlyPaymentFormatted string             `json:"monthlyPaymentFormatted"`
	Months                  int                `json:"months"`
	MonthlyRate             float64            `json:"monthlyRate"`
	Exact                   EMIExact           `json:"exact"`
	Breakdown               *BreakdownResponse `json:"breakdown,omitempty"`
}

type BreakdownResponse struct {
	PropertyPrice         int64   `json:"propertyPrice"`
	DownPayment           int64   `json:"downPayment"`
	LoanToValuePercent    float64 `json:"loanToValuePercent"`
	PrincipalSharePercent float64 `json:"principalSharePercent"`
	InterestSharePercent  float64 `json:"interestSharePercent"`
}

type ScheduleRow struct {
	Year           int   `json:"year"`
	OpeningBalance int64 `json:"openingBalance"`
	PrincipalPaid  int64 `json:"principalPaid"`
	InterestPaid   int64 `json:"interestPaid"`
	ClosingBalance int64 `json:"closingBalance"`
}

type ScheduleResponse struct {
	EMI   EMIResponse   `json:"emi"`
	Years []ScheduleRow `json:"years"`
}

type EligibilityRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TenureYears       int     `json:"tenureYears"`
	MonthlyIncome     float64 `json:"monthlyIncome"`
	ExistingEMIs      float64 `json:"existingEmis"`
}

type EligibilityResponse struct {
	EMI                EMIResponse `json:"emi"`
	Eligible           bool        `json:"eligible"`
	MaxAffordableEMI   int64       `json:"maxAffordableEmi"`
	MaxLoanAmount      int64       `json:"maxLoanAmount"`
	IncomeSharePercent float64     `json:"incomeSharePercent"`
	Shortfall          int64       `json:"shortfall"`
}

// ListingEMIQuery overrides the defaults used for a listing's EMI.
type ListingEMIQuery struct {
	Principal         *float64 `form:"principal"`
	AnnualRatePercent *float64 `form:"rate"`
	TenureYears       *int     `form:"tenure"`
}

type ListingEMIResponse struct {
	ListingID              uuid.UUID   `json:"listingId"`
	PropertyPrice          int64       `json:"propertyPrice"`
	PropertyPriceFormatted string      `json:"propertyPriceFormatted"`
	Principal              float64     `json:"principal"`
	AnnualRatePercent      float64     `json:"annualRatePercent"`
	TenureYears            int         `json:"tenureYears"`
	EMI                    EMIResponse `json:"emi"`
}
