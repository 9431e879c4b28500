// Package service implements customer investments and construction progress
// tracking.
package service

import (
	"context"
	"strings"

	"estate_portal_backend/internal/events"
	"estate_portal_backend/internal/investments/repository"
	"estate_portal_backend/internal/investments/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/money"
	"estate_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// ListingSummary is what an investment needs to know about its listing.
type ListingSummary struct {
	ID        uuid.UUID
	Name      string
	BuilderID uuid.UUID
}

// ListingReader resolves active listings.
type ListingReader interface {
	ActiveListing(ctx context.Context, id uuid.UUID) (ListingSummary, error)
}

// Service provides business logic for investments.
type Service struct {
	repo     repository.Repository
	listings ListingReader
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new investments service.
func New(repo repository.Repository, listings ListingReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, listings: listings, bus: bus, log: log}
}

var stageRank = map[string]int{
	repository.StageBooking:    0,
	repository.StageFoundation: 1,
	repository.StageStructure:  2,
	repository.StageFinishing:  3,
	repository.StageReady:      4,
}

var statusTransitions = map[string][]string{
	repository.StatusPending:   {repository.StatusConfirmed, repository.StatusCancelled},
	repository.StatusConfirmed: {repository.StatusCompleted, repository.StatusCancelled},
}

// Create records a customer's investment in an active listing.
func (s *Service) Create(ctx context.Context, customerID uuid.UUID, req transport.CreateInvestmentRequest) (transport.InvestmentResponse, error) {
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return transport.InvestmentResponse{}, apperr.Validation("invalid listing id")
	}
	if req.Amount <= 0 {
		return transport.InvestmentResponse{}, apperr.Validation("amount must be positive").WithCode("INVALID_AMOUNT")
	}
	listing, err := s.listings.ActiveListing(ctx, listingID)
	if err != nil {
		return transport.InvestmentResponse{}, err
	}

	investmentType := req.InvestmentType
	if investmentType == "" {
		investmentType = "booking"
	}

	created, err := s.repo.Create(ctx, repository.Investment{
		CustomerID:     customerID,
		ListingID:      listing.ID,
		ListingName:    listing.Name,
		BuilderID:      listing.BuilderID,
		Amount:         req.Amount,
		InvestmentType: investmentType,
		Status:         repository.StatusPending,
		ProgressStage:  repository.StageBooking,
		Notes:          sanitize.Text(req.Notes),
	})
	if err != nil {
		return transport.InvestmentResponse{}, err
	}

	s.bus.Publish(ctx, events.InvestmentCreated{
		BaseEvent:    events.NewBaseEvent(),
		InvestmentID: created.ID,
		ListingID:    created.ListingID,
		CustomerID:   created.CustomerID,
		Amount:       created.Amount,
	})

	s.log.Info("investment created", "id", created.ID, "listingId", created.ListingID)
	return toResponse(created), nil
}

// Get returns one investment visible to the caller: its customer, the
// listing's builder, or an admin.
func (s *Service) Get(ctx context.Context, userID uuid.UUID, admin bool, id uuid.UUID) (transport.InvestmentResponse, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.InvestmentResponse{}, err
	}
	if !admin && inv.CustomerID != userID && inv.BuilderID != userID {
		return transport.InvestmentResponse{}, apperr.NotFound("investment not found")
	}
	return toResponse(inv), nil
}

// Portfolio summarizes a customer's investments. Cancelled investments are
// listed but not counted.
func (s *Service) Portfolio(ctx context.Context, customerID uuid.UUID) (transport.PortfolioResponse, error) {
	items, err := s.repo.ListForCustomer(ctx, customerID)
	if err != nil {
		return transport.PortfolioResponse{}, err
	}

	out := transport.PortfolioResponse{
		StageCounts: make(map[string]int, len(stageRank)),
		Items:       make([]transport.InvestmentResponse, 0, len(items)),
	}
	for stage := range stageRank {
		out.StageCounts[stage] = 0
	}
	for _, inv := range items {
		out.Items = append(out.Items, toResponse(inv))
		switch inv.Status {
		case repository.StatusCancelled:
			continue
		case repository.StatusCompleted:
			out.CompletedCount++
		default:
			out.ActiveCount++
		}
		out.TotalInvested += inv.Amount
		out.StageCounts[inv.ProgressStage]++
	}
	out.TotalInvestedLabel = money.FormatPrice(out.TotalInvested)
	return out, nil
}

// ListForBuilder lists investments in the builder's listings.
func (s *Service) ListForBuilder(ctx context.Context, builderID uuid.UUID) (transport.InvestmentListResponse, error) {
	items, err := s.repo.ListForBuilder(ctx, builderID)
	if err != nil {
		return transport.InvestmentListResponse{}, err
	}
	out := make([]transport.InvestmentResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, toResponse(inv))
	}
	return transport.InvestmentListResponse{Items: out}, nil
}

// UpdateProgress moves construction progress forward. Stages and
// percentages never go backwards; reaching "ready" means 100%.
func (s *Service) UpdateProgress(ctx context.Context, builderID uuid.UUID, admin bool, id uuid.UUID, req transport.UpdateProgressRequest) (transport.InvestmentResponse, error) {
	current, err := s.owned(ctx, builderID, admin, id)
	if err != nil {
		return transport.InvestmentResponse{}, err
	}
	if current.Status == repository.StatusCancelled {
		return transport.InvestmentResponse{}, apperr.Conflict("investment is cancelled").WithCode("INVESTMENT_CANCELLED")
	}

	rank, ok := stageRank[req.Stage]
	if !ok {
		return transport.InvestmentResponse{}, apperr.Validation("unknown stage " + req.Stage)
	}
	if rank < stageRank[current.ProgressStage] {
		return transport.InvestmentResponse{}, apperr.Conflict("progress cannot move from " + current.ProgressStage + " to " + req.Stage).
			WithCode("INVALID_PROGRESS")
	}
	percentage := req.Percentage
	if req.Stage == repository.StageReady {
		percentage = 100
	}
	if percentage < current.ProgressPercentage {
		return transport.InvestmentResponse{}, apperr.Conflict("progress percentage cannot decrease").WithCode("INVALID_PROGRESS")
	}

	progress := repository.Progress{
		Stage:      req.Stage,
		Percentage: percentage,
		Notes:      sanitize.Text(req.Notes),
	}
	for _, doc := range req.Documents {
		progress.Documents = append(progress.Documents, repository.Document{
			Name: sanitize.Line(doc.Name),
			URL:  strings.TrimSpace(doc.URL),
		})
	}
	stampDocuments(progress.Documents)

	updated, err := s.repo.UpdateProgress(ctx, id, repository.SnapshotOf(current), progress)
	if err != nil {
		return transport.InvestmentResponse{}, err
	}

	s.bus.Publish(ctx, events.InvestmentProgressUpdated{
		BaseEvent:    events.NewBaseEvent(),
		InvestmentID: updated.ID,
		CustomerID:   updated.CustomerID,
		Stage:        updated.ProgressStage,
		Percentage:   updated.ProgressPercentage,
	})
	return toResponse(updated), nil
}

// UpdateStatus confirms, completes or cancels an investment.
func (s *Service) UpdateStatus(ctx context.Context, builderID uuid.UUID, admin bool, id uuid.UUID, req transport.UpdateStatusRequest) (transport.InvestmentResponse, error) {
	current, err := s.owned(ctx, builderID, admin, id)
	if err != nil {
		return transport.InvestmentResponse{}, err
	}
	if current.Status == req.Status {
		return toResponse(current), nil
	}
	if !canTransition(current.Status, req.Status) {
		return transport.InvestmentResponse{}, apperr.Conflict("investment cannot move from " + current.Status + " to " + req.Status).
			WithCode("INVALID_STATUS_TRANSITION")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, req.Status)
	if err != nil {
		return transport.InvestmentResponse{}, err
	}
	s.log.Info("investment status changed", "id", id, "from", current.Status, "to", req.Status)
	return toResponse(updated), nil
}

// Returns is the public returns calculator.
func (s *Service) Returns(req transport.ReturnsRequest) (transport.ReturnsResponse, error) {
	est, err := Returns(req.PurchasePrice, req.CurrentPrice, req.Years)
	if err != nil {
		return transport.ReturnsResponse{}, err
	}
	return transport.ReturnsResponse{
		TotalReturn:           est.TotalReturn,
		TotalReturnPercentage: est.TotalReturnPercentage,
		AnnualizedReturn:      est.AnnualizedReturn,
	}, nil
}

func (s *Service) owned(ctx context.Context, builderID uuid.UUID, admin bool, id uuid.UUID) (repository.Investment, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Investment{}, err
	}
	if !admin && inv.BuilderID != builderID {
		return repository.Investment{}, apperr.NotFound("investment not found")
	}
	return inv, nil
}

func canTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
