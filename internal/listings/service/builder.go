package service

import (
	"context"
	"path"
	"strings"

	"estate_portal_backend/internal/adapters/storage"
	"estate_portal_backend/internal/events"
	"estate_portal_backend/internal/listings/domain"
	"estate_portal_backend/internal/listings/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Mine lists every listing the caller owns, drafts included.
func (s *Service) Mine(ctx context.Context, actor Actor) (transport.ListingListResponse, error) {
	listings, err := s.repo.ListByBuilder(ctx, actor.UserID)
	if err != nil {
		return transport.ListingListResponse{}, err
	}
	return transport.ListingListResponse{Items: toListingResponses(listings)}, nil
}

// Create adds a listing owned by the caller.
func (s *Service) Create(ctx context.Context, actor Actor, req transport.ListingRequest) (transport.ListingResponse, error) {
	listing := domain.Listing{
		BuilderID: actor.UserID,
		Status:    domain.Status(req.Status),
	}
	applyRequest(&listing, req, actor)
	listing.Normalize()
	if err := listing.Validate(); err != nil {
		return transport.ListingResponse{}, err
	}

	created, err := s.repo.Create(ctx, listing)
	if err != nil {
		return transport.ListingResponse{}, err
	}

	s.log.Info("listing created", "id", created.ID, "builderId", created.BuilderID, "status", created.Status)
	s.publishChange(ctx, created, events.ListingCreated)
	return toListingResponse(created), nil
}

// Update replaces the editable fields of a listing the caller owns.
// Status, counters and ownership are kept.
func (s *Service) Update(ctx context.Context, actor Actor, id uuid.UUID, req transport.ListingRequest) (transport.ListingResponse, error) {
	existing, err := s.owned(ctx, actor, id)
	if err != nil {
		return transport.ListingResponse{}, err
	}

	listing := existing
	applyRequest(&listing, req, actor)
	listing.Normalize()
	if err := listing.Validate(); err != nil {
		return transport.ListingResponse{}, err
	}

	updated, err := s.repo.Update(ctx, listing)
	if err != nil {
		return transport.ListingResponse{}, err
	}

	s.log.Info("listing updated", "id", updated.ID)
	s.publishChange(ctx, updated, events.ListingUpdated)
	return toListingResponse(updated), nil
}

// UpdateStatus moves a listing through draft, active, inactive and sold.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, req transport.UpdateStatusRequest) (transport.StatusChangeResponse, error) {
	existing, err := s.owned(ctx, actor, id)
	if err != nil {
		return transport.StatusChangeResponse{}, err
	}

	next := domain.Status(req.Status)
	if !domain.CanTransition(existing.Status, next) {
		return transport.StatusChangeResponse{}, apperr.Conflict("listing cannot move from " + string(existing.Status) + " to " + string(next)).
			WithCode("INVALID_STATUS_TRANSITION")
	}
	if existing.Status == next {
		return transport.StatusChangeResponse{ID: id, Status: next}, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return transport.StatusChangeResponse{}, err
	}

	s.log.Info("listing status changed", "id", id, "from", existing.Status, "to", updated.Status)
	s.publishChange(ctx, updated, events.ListingStatusChanged)
	return transport.StatusChangeResponse{ID: updated.ID, Status: updated.Status}, nil
}

// Delete removes a listing the caller owns.
func (s *Service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("listing deleted", "id", id)
	s.publishChange(ctx, existing, events.ListingDeleted)
	return nil
}

// PresignMedia returns an upload URL for an image, floor plan or brochure of
// a listing the caller owns.
func (s *Service) PresignMedia(ctx context.Context, actor Actor, id uuid.UUID, req transport.PresignMediaRequest) (transport.PresignMediaResponse, error) {
	if s.storage == nil {
		return transport.PresignMediaResponse{}, apperr.New(apperr.KindUnprocessable, "media uploads are not configured").
			WithCode("STORAGE_DISABLED")
	}
	kind, err := storage.ParseMediaKind(req.Kind)
	if err != nil {
		return transport.PresignMediaResponse{}, err
	}
	listing, err := s.owned(ctx, actor, id)
	if err != nil {
		return transport.PresignMediaResponse{}, err
	}

	folder := path.Join("listings", listing.BuilderID.String(), listing.ID.String())
	presigned, err := s.storage.PresignUpload(ctx, s.bucket, folder, kind, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.PresignMediaResponse{}, err
	}
	return transport.PresignMediaResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

func (s *Service) owned(ctx context.Context, actor Actor, id uuid.UUID) (domain.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Listing{}, err
	}
	if !actor.Admin && listing.BuilderID != actor.UserID {
		return domain.Listing{}, apperr.Forbidden("listing belongs to another builder")
	}
	return listing, nil
}

func (s *Service) publishChange(ctx context.Context, l domain.Listing, change events.ListingChange) {
	err := s.bus.PublishSync(ctx, events.ListingChanged{
		BaseEvent: events.NewBaseEvent(),
		ListingID: l.ID,
		BuilderID: l.BuilderID,
		Change:    change,
	})
	if err != nil {
		s.log.WithContext(ctx).Error("listing change handlers failed", "id", l.ID, "change", change, "error", err)
	}
}

func applyRequest(l *domain.Listing, req transport.ListingRequest, actor Actor) {
	l.Name = sanitize.Line(req.Name)
	l.BuilderName = sanitize.Line(req.BuilderName)
	if l.BuilderName == "" {
		l.BuilderName = strings.TrimSpace(actor.Name)
	}
	l.Location = domain.Location{
		City:    sanitize.Line(req.Location.City),
		Area:    sanitize.Line(req.Location.Area),
		SubArea: sanitize.Line(req.Location.SubArea),
		Pincode: strings.TrimSpace(req.Location.Pincode),
	}
	l.PriceRange = domain.PriceRange{Min: req.PriceMin, Max: req.PriceMax}
	l.PropertyType = domain.PropertyType(req.PropertyType)
	l.Configurations = sanitize.Lines(req.Configurations)
	l.PossessionDate = domain.Date{}
	if req.PossessionDate != nil {
		l.PossessionDate = *req.PossessionDate
	}
	l.PossessionStatus = domain.PossessionStatus(req.PossessionStatus)
	l.ReraID = strings.TrimSpace(req.ReraID)
	l.Amenities = sanitize.Lines(req.Amenities)
	l.Images = append([]string(nil), req.Images...)
	l.Brochure = strings.TrimSpace(req.Brochure)
	l.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	l.Description = sanitize.Text(req.Description)
	l.Featured = req.Featured
	l.Specifications = domain.Specifications{AreaSqFt: req.AreaSqFt, Bedrooms: req.Bedrooms, Bathrooms: req.Bathrooms}
	l.TotalUnits = req.TotalUnits
	l.AvailableUnits = req.AvailableUnits

	l.FloorPlans = make([]domain.FloorPlan, 0, len(req.FloorPlans))
	for _, fp := range req.FloorPlans {
		l.FloorPlans = append(l.FloorPlans, domain.FloorPlan{Type: sanitize.Line(fp.Type), AreaSqFt: fp.Area, Price: fp.Price})
	}
	l.NearbyLandmarks = make([]domain.Landmark, 0, len(req.NearbyLandmarks))
	for _, lm := range req.NearbyLandmarks {
		l.NearbyLandmarks = append(l.NearbyLandmarks, domain.Landmark{Name: sanitize.Line(lm.Name), Distance: sanitize.Line(lm.Distance)})
	}
}
