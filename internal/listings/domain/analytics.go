package domain

import (
	"cmp"
	"math"
	"slices"

	"github.com/google/uuid"
)

// ListingStats is one listing's row on the builder analytics dashboard.
type ListingStats struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Status         Status    `json:"status"`
	Views          int64     `json:"views"`
	Inquiries      int64     `json:"inquiries"`
	ConversionRate float64   `json:"conversionRate"`
}

// AnalyticsOverview totals a builder's listings. ConversionRate is inquiries
// per hundred views.
type AnalyticsOverview struct {
	TotalListings  int     `json:"totalListings"`
	ActiveListings int     `json:"activeListings"`
	TotalViews     int64   `json:"totalViews"`
	TotalInquiries int64   `json:"totalInquiries"`
	ConversionRate float64 `json:"conversionRate"`
}

type Analytics struct {
	Overview AnalyticsOverview `json:"overview"`
	Listings []ListingStats    `json:"listings"`
}

// BuildAnalytics aggregates the view and inquiry counters of listings.
// Rows are ordered by views, then inquiries, both descending, then ID.
func BuildAnalytics(listings []Listing) Analytics {
	out := Analytics{Listings: make([]ListingStats, 0, len(listings))}
	for _, l := range listings {
		out.Overview.TotalListings++
		if l.Status == StatusActive {
			out.Overview.ActiveListings++
		}
		out.Overview.TotalViews += l.Views
		out.Overview.TotalInquiries += l.Inquiries
		out.Listings = append(out.Listings, ListingStats{
			ID:             l.ID,
			Name:           l.Name,
			Status:         l.Status,
			Views:          l.Views,
			Inquiries:      l.Inquiries,
			ConversionRate: conversionRate(l.Inquiries, l.Views),
		})
	}
	out.Overview.ConversionRate = conversionRate(out.Overview.TotalInquiries, out.Overview.TotalViews)

	slices.SortFunc(out.Listings, func(a, b ListingStats) int {
		if c := cmp.Compare(b.Views, a.Views); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Inquiries, a.Inquiries); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out
}

// conversionRate is zero without views and rounded to two decimals.
func conversionRate(inquiries, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return math.Round(float64(inquiries)/float64(views)*100*100) / 100
}
