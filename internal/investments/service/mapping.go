package service

import (
	"time"

	"estate_portal_backend/internal/investments/repository"
	"estate_portal_backend/internal/investments/transport"
	"estate_portal_backend/platform/money"
)

func toResponse(inv repository.Investment) transport.InvestmentResponse {
	docs := make([]transport.DocumentResponse, 0, len(inv.Documents))
	for _, d := range inv.Documents {
		docs = append(docs, transport.DocumentResponse{Name: d.Name, URL: d.URL, UploadedAt: d.UploadedAt})
	}
	return transport.InvestmentResponse{
		ID:             inv.ID,
		ListingID:      inv.ListingID,
		ListingName:    inv.ListingName,
		CustomerID:     inv.CustomerID,
		Amount:         inv.Amount,
		AmountLabel:    money.FormatPrice(inv.Amount),
		InvestmentType: inv.InvestmentType,
		Status:         inv.Status,
		Progress: transport.ProgressResponse{
			Stage:       inv.ProgressStage,
			Percentage:  inv.ProgressPercentage,
			LastUpdated: inv.ProgressUpdatedAt,
		},
		Notes:     inv.Notes,
		Documents: docs,
		CreatedAt: inv.CreatedAt,
	}
}

func stampDocuments(docs []repository.Document) {
	now := time.Now().UTC()
	for i := range docs {
		docs[i].UploadedAt = now
	}
}
