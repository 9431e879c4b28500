package service

import (
	"math"

	"estate_portal_backend/platform/apperr"
)

// ReturnEstimate is the gain on a property held for a number of years.
// Percentages are rounded to two decimals.
type ReturnEstimate struct {
	TotalReturn           float64
	TotalReturnPercentage float64
	AnnualizedReturn      float64
}

// Returns computes the absolute, percentage and compound annual return
// between a purchase and a current price.
func Returns(purchasePrice, currentPrice, years float64) (ReturnEstimate, error) {
	if purchasePrice <= 0 || math.IsNaN(purchasePrice) || math.IsInf(purchasePrice, 0) {
		return ReturnEstimate{}, apperr.Validation("purchase price must be positive").WithCode("INVALID_RETURN_INPUT")
	}
	if currentPrice < 0 || math.IsNaN(currentPrice) || math.IsInf(currentPrice, 0) {
		return ReturnEstimate{}, apperr.Validation("current price must not be negative").WithCode("INVALID_RETURN_INPUT")
	}
	if years <= 0 || math.IsNaN(years) || math.IsInf(years, 0) {
		return ReturnEstimate{}, apperr.Validation("holding period must be positive").WithCode("INVALID_RETURN_INPUT")
	}

	total := currentPrice - purchasePrice
	annualized := (math.Pow(currentPrice/purchasePrice, 1/years) - 1) * 100
	return ReturnEstimate{
		TotalReturn:           round2(total),
		TotalReturnPercentage: round2(total / purchasePrice * 100),
		AnnualizedReturn:      round2(annualized),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
