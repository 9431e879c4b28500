package service

import (
	"context"

	"estate_portal_backend/internal/listings/domain"
	"estate_portal_backend/internal/listings/transport"
)

// Analytics totals the view and inquiry counters of every listing the caller
// owns, drafts and sold listings included.
func (s *Service) Analytics(ctx context.Context, actor Actor) (transport.AnalyticsResponse, error) {
	listings, err := s.repo.ListByBuilder(ctx, actor.UserID)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	return domain.BuildAnalytics(listings), nil
}
