// Package service implements the loan calculator and the loans use cases.
package service

import (
	"context"
	"math"

	"estate_portal_backend/internal/loans/transport"
	"estate_portal_backend/platform/money"

	"github.com/google/uuid"
)

// ListingPriceReader resolves the starting price of a browsable listing.
type ListingPriceReader interface {
	StartingPrice(ctx context.Context, listingID uuid.UUID) (int64, error)
}

// Service exposes the calculator over transport types.
type Service struct {
	listings ListingPriceReader
}

// New creates a loans service.
func New(listings ListingPriceReader) *Service {
	return &Service{listings: listings}
}

// Calculate computes the EMI and, when a property price is given, the
// down payment breakdown.
func (s *Service) Calculate(req transport.EMIRequest) (transport.EMIResponse, error) {
	emi, err := ComputeEMI(req.Principal, req.AnnualRatePercent, req.TenureYears)
	if err != nil {
		return transport.EMIResponse{}, err
	}

	resp := toEMIResponse(emi)
	if req.PropertyPrice != nil {
		breakdown, err := Breakdown(*req.PropertyPrice, emi)
		if err != nil {
			return transport.EMIResponse{}, err
		}
		resp.Breakdown = toBreakdownResponse(breakdown)
	}
	return resp, nil
}

// Schedule returns the EMI with its yearly amortization table.
func (s *Service) Schedule(req transport.EMIRequest) (transport.ScheduleResponse, error) {
	emi, err := ComputeEMI(req.Principal, req.AnnualRatePercent, req.TenureYears)
	if err != nil {
		return transport.ScheduleResponse{}, err
	}
	years, err := Schedule(emi)
	if err != nil {
		return transport.ScheduleResponse{}, err
	}

	rows := make([]transport.ScheduleRow, 0, len(years))
	for _, y := range years {
		rows = append(rows, transport.ScheduleRow{
			Year:           y.Year,
			OpeningBalance: roundRupees(y.OpeningBalance),
			PrincipalPaid:  roundRupees(y.PrincipalPaid),
			InterestPaid:   roundRupees(y.InterestPaid),
			ClosingBalance: roundRupees(y.ClosingBalance),
		})
	}
	return transport.ScheduleResponse{EMI: toEMIResponse(emi), Years: rows}, nil
}

// Eligibility checks the EMI against the borrower's income.
func (s *Service) Eligibility(req transport.EligibilityRequest) (transport.EligibilityResponse, error) {
	emi, err := ComputeEMI(req.Principal, req.AnnualRatePercent, req.TenureYears)
	if err != nil {
		return transport.EligibilityResponse{}, err
	}
	result, err := Eligibility(req.MonthlyIncome, req.ExistingEMIs, emi)
	if err != nil {
		return transport.EligibilityResponse{}, err
	}

	return transport.EligibilityResponse{
		EMI:                toEMIResponse(emi),
		Eligible:           result.Eligible,
		MaxAffordableEMI:   roundRupees(result.MaxAffordable),
		MaxLoanAmount:      roundRupees(result.MaxLoanAmount),
		IncomeSharePercent: roundTenth(result.IncomeSharePercent),
		Shortfall:          roundRupees(result.ShortfallAmount),
	}, nil
}

// ForListing computes the EMI for a listing's starting price. Unset query
// values fall back to 80% of the price, 8.5% and 20 years.
func (s *Service) ForListing(ctx context.Context, listingID uuid.UUID, q transport.ListingEMIQuery) (transport.ListingEMIResponse, error) {
	price, err := s.listings.StartingPrice(ctx, listingID)
	if err != nil {
		return transport.ListingEMIResponse{}, err
	}

	principal := DefaultLoanAmount(price)
	if q.Principal != nil {
		principal = *q.Principal
	}
	rate := DefaultAnnualRatePercent
	if q.AnnualRatePercent != nil {
		rate = *q.AnnualRatePercent
	}
	tenure := DefaultTenureYears
	if q.TenureYears != nil {
		tenure = *q.TenureYears
	}

	propertyPrice := float64(price)
	resp, err := s.Calculate(transport.EMIRequest{
		Principal:         principal,
		AnnualRatePercent: rate,
		TenureYears:       tenure,
		PropertyPrice:     &propertyPrice,
	})
	if err != nil {
		return transport.ListingEMIResponse{}, err
	}

	return transport.ListingEMIResponse{
		ListingID:              listingID,
		PropertyPrice:          price,
		PropertyPriceFormatted: money.FormatPrice(price),
		Principal:              principal,
		AnnualRatePercent:      rate,
		TenureYears:            tenure,
		EMI:                    resp,
	}, nil
}

func toEMIResponse(emi EMI) transport.EMIResponse {
	rounded := emi.Rounded()
	return transport.EMIResponse{
		MonthlyPayment:          rounded.MonthlyPayment,
		TotalPayment:            rounded.TotalPayment,
		TotalInterest:           rounded.TotalInterest,
		MonthlyPaymentFormatted: money.FormatRupees(rounded.MonthlyPayment),
		Months:                  emi.Months,
		MonthlyRate:             emi.MonthlyRate,
		Exact: transport.EMIExact{
			MonthlyPayment: emi.MonthlyPayment,
			TotalPayment:   emi.TotalPayment,
			TotalInterest:  emi.TotalInterest,
		},
	}
}

func toBreakdownResponse(b LoanBreakdown) *transport.BreakdownResponse {
	return &transport.BreakdownResponse{
		PropertyPrice:         roundRupees(b.PropertyPrice),
		DownPayment:           roundRupees(b.DownPayment),
		LoanToValuePercent:    roundTenth(b.LoanToValuePercent),
		PrincipalSharePercent: roundTenth(b.PrincipalSharePercent),
		InterestSharePercent:  roundTenth(b.InterestSharePercent),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
