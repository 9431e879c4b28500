package service

import (
	"context"
	"strings"
	"time"
	_ "time/tzdata"

	"estate_portal_backend/internal/inquiries/repository"
	"estate_portal_backend/internal/inquiries/transport"
	"estate_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	exportBatchSize   = 500
	maxExportRows     = 5000
	defaultExportDays = 90
	dateLayout        = "2006-01-02"
)

// DefaultTimezone is used when an export does not name one.
const DefaultTimezone = "Asia/Kolkata"

// Export is the result of an inquiry export: the rows, newest first, and
// the location their timestamps should be rendered in.
type Export struct {
	Items     []transport.InquiryResponse
	Location  *time.Location
	Timezone  string
	Truncated bool
}

// ExportForBuilder collects up to maxExportRows of the builder's inquiries
// created in the requested window. Without dates the window is the last 90
// days.
func (s *Service) ExportForBuilder(ctx context.Context, builderID uuid.UUID, req transport.ExportInquiriesRequest) (Export, error) {
	tzName := strings.TrimSpace(req.Timezone)
	if tzName == "" {
		tzName = DefaultTimezone
	}
	location, err := time.LoadLocation(tzName)
	if err != nil {
		return Export{}, apperr.Validation("invalid timezone").WithCode("INVALID_TIMEZONE")
	}

	from, to, err := exportWindow(req.FromDate, req.ToDate, location, time.Now())
	if err != nil {
		return Export{}, err
	}

	params := repository.ListParams{
		BuilderID: builderID,
		Status:    req.Status,
		From:      &from,
		To:        &to,
		Limit:     exportBatchSize,
	}
	if req.ListingID != "" {
		id, err := uuid.Parse(req.ListingID)
		if err != nil {
			return Export{}, apperr.Validation("invalid listing id")
		}
		params.ListingID = &id
	}

	out := Export{Items: []transport.InquiryResponse{}, Location: location, Timezone: tzName}
	for {
		batch, total, err := s.repo.ListForBuilder(ctx, params)
		if err != nil {
			return Export{}, err
		}
		for _, in := range batch {
			if len(out.Items) == maxExportRows {
				out.Truncated = true
				return out, nil
			}
			out.Items = append(out.Items, toResponse(in))
		}
		params.Offset += len(batch)
		if len(batch) < params.Limit || params.Offset >= total {
			break
		}
	}

	s.log.Info("inquiries exported", "builderId", builderID, "rows", len(out.Items))
	return out, nil
}

// exportWindow resolves the inclusive creation window. toDate covers the
// whole day in loc.
func exportWindow(fromDate, toDate string, loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	to := now
	from := now.AddDate(0, 0, -defaultExportDays)

	if strings.TrimSpace(fromDate) != "" {
		parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(fromDate), loc)
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Validation("invalid fromDate").WithCode("INVALID_DATE_RANGE")
		}
		from = parsed
	}
	if strings.TrimSpace(toDate) != "" {
		parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(toDate), loc)
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Validation("invalid toDate").WithCode("INVALID_DATE_RANGE")
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperr.Validation("toDate before fromDate").WithCode("INVALID_DATE_RANGE")
	}
	return from.UTC(), to.UTC(), nil
}
