package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"estate_portal_backend/internal/events"
	"estate_portal_backend/internal/inquiries/repository"
	"estate_portal_backend/internal/inquiries/transport"
	"estate_portal_backend/platform/apperr"
	platformevents "estate_portal_backend/platform/events"
	"estate_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items      map[uuid.UUID]repository.Inquiry
	lastParams repository.ListParams
	// beforeWrite runs between the service's read and the conditional write.
	beforeWrite func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[uuid.UUID]repository.Inquiry{}}
}

func (r *fakeRepo) Create(_ context.Context, in repository.Inquiry) (repository.Inquiry, error) {
	in.ID = uuid.New()
	in.CreatedAt = time.Now()
	in.UpdatedAt = in.CreatedAt
	r.items[in.ID] = in
	return in, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Inquiry, error) {
	in, ok := r.items[id]
	if !ok {
		return repository.Inquiry{}, apperr.NotFound("inquiry not found")
	}
	return in, nil
}

func (r *fakeRepo) ListForBuilder(_ context.Context, p repository.ListParams) ([]repository.Inquiry, int, error) {
	r.lastParams = p
	var out []repository.Inquiry
	for _, in := range r.items {
		if in.BuilderID == p.BuilderID && (p.Status == "" || in.Status == p.Status) {
			out = append(out, in)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListForCustomer(_ context.Context, customerID uuid.UUID) ([]repository.Inquiry, error) {
	var out []repository.Inquiry
	for _, in := range r.items {
		if in.CustomerID != nil && *in.CustomerID == customerID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to string) (repository.Inquiry, error) {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	in, ok := r.items[id]
	if !ok {
		return repository.Inquiry{}, apperr.NotFound("inquiry not found")
	}
	if in.Status != from {
		return repository.Inquiry{}, repository.ErrConcurrentUpdate
	}
	in.Status = to
	r.items[id] = in
	return in, nil
}

type fakeListings struct {
	listing  ListingSummary
	recorded []uuid.UUID
}

func (f *fakeListings) ActiveListing(_ context.Context, id uuid.UUID) (ListingSummary, error) {
	if id != f.listing.ID {
		return ListingSummary{}, apperr.NotFound("listing not found")
	}
	return f.listing, nil
}

func (f *fakeListings) RecordInquiry(_ context.Context, id uuid.UUID) error {
	f.recorded = append(f.recorded, id)
	return nil
}

var (
	builderID  = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	customerID = uuid.MustParse("cccccccc-0000-0000-0000-000000000001")
	listingID  = uuid.MustParse("00000000-0000-0000-0000-000000000009")
)

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	listings *fakeListings
	bus      *platformevents.InMemoryBus
	mu       sync.Mutex
	received []events.InquirySubmitted
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeRepo(),
		listings: &fakeListings{listing: ListingSummary{ID: listingID, Name: "Palm Grove", BuilderID: builderID}},
		bus:      platformevents.NewInMemoryBus(logger.Discard()),
	}
	f.bus.Subscribe(events.InquirySubmitted{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.received = append(f.received, e.(events.InquirySubmitted))
		return nil
	}))
	f.svc = New(f.repo, f.listings, f.bus, logger.Discard())
	return f
}

func validSubmission() transport.SubmitInquiryRequest {
	return transport.SubmitInquiryRequest{
		Name:    " Asha   Rao ",
		Email:   "Asha@Example.com",
		Phone:   "98765 43210",
		Message: "<p>Is a site visit possible this weekend?</p>",
	}
}

func TestSubmitNormalizesAndPublishes(t *testing.T) {
	f := newFixture()

	got, err := f.svc.Submit(context.Background(), customerID, listingID, validSubmission())
	require.NoError(t, err)
	f.bus.Wait()

	assert.Equal(t, "Asha Rao", got.Name)
	assert.Equal(t, "asha@example.com", got.Email)
	assert.Equal(t, "+919876543210", got.Phone)
	assert.Equal(t, "Is a site visit possible this weekend?", got.Message)
	assert.Equal(t, "info-request", got.InquiryType)
	assert.Equal(t, "email", got.PreferredContact)
	assert.Equal(t, repository.StatusNew, got.Status)
	assert.Equal(t, "Palm Grove", got.ListingName)
	assert.Equal(t, []uuid.UUID{listingID}, f.listings.recorded)

	require.Len(t, f.received, 1)
	assert.Equal(t, builderID, f.received[0].BuilderID)
	assert.Equal(t, got.ID, f.received[0].InquiryID)
}

func TestSubmitRejectsInvalidPhone(t *testing.T) {
	f := newFixture()
	req := validSubmission()
	req.Phone = "12345"

	_, err := f.svc.Submit(context.Background(), customerID, listingID, req)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_PHONE", appErr.Code)
	assert.Empty(t, f.repo.items)
}

func TestSubmitRequiresActiveListing(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Submit(context.Background(), customerID, uuid.New(), validSubmission())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListForBuilderClampsPaging(t *testing.T) {
	f := newFixture()
	for i := 0; i < 3; i++ {
		_, err := f.svc.Submit(context.Background(), customerID, listingID, validSubmission())
		require.NoError(t, err)
	}

	res, err := f.svc.ListForBuilder(context.Background(), builderID, transport.ListInquiriesRequest{Page: 2, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 100, res.PageSize)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 100, f.repo.lastParams.Offset)

	mine, err := f.svc.ListForCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestStatusOnlyMovesForward(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in, err := f.svc.Submit(ctx, customerID, listingID, validSubmission())
	require.NoError(t, err)

	res, err := f.svc.UpdateStatus(ctx, builderID, false, in.ID, transport.UpdateInquiryStatusRequest{Status: "contacted"})
	require.NoError(t, err)
	assert.Equal(t, repository.StatusContacted, res.Status)

	_, err = f.svc.UpdateStatus(ctx, builderID, false, in.ID, transport.UpdateInquiryStatusRequest{Status: "new"})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_STATUS_TRANSITION", appErr.Code)

	_, err = f.svc.UpdateStatus(ctx, uuid.New(), false, in.ID, transport.UpdateInquiryStatusRequest{Status: "closed"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	res, err = f.svc.UpdateStatus(ctx, uuid.New(), true, in.ID, transport.UpdateInquiryStatusRequest{Status: "closed"})
	require.NoError(t, err)
	assert.Equal(t, repository.StatusClosed, res.Status)
}

func TestStatusLosesToConcurrentClose(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in, err := f.svc.Submit(ctx, customerID, listingID, validSubmission())
	require.NoError(t, err)

	// The inquiry is closed from another session after this request read it.
	f.repo.beforeWrite = func() {
		row := f.repo.items[in.ID]
		row.Status = repository.StatusClosed
		f.repo.items[in.ID] = row
	}
	_, err = f.svc.UpdateStatus(ctx, builderID, false, in.ID, transport.UpdateInquiryStatusRequest{Status: "contacted"})
	assert.ErrorIs(t, err, repository.ErrConcurrentUpdate)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, repository.StatusClosed, f.repo.items[in.ID].Status)
}

func TestExportWindow(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	from, to, err := exportWindow("", "", ist, now)
	require.NoError(t, err)
	assert.Equal(t, now, to)
	assert.Equal(t, now.AddDate(0, 0, -90), from)

	from, to, err = exportWindow("2026-03-01", "2026-03-01", ist, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 18, 30, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 18, 29, 59, 999999999, time.UTC), to)

	_, _, err = exportWindow("2026-03-02", "2026-03-01", ist, now)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestExportForBuilderScopesToBuilder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Submit(ctx, customerID, listingID, validSubmission())
	require.NoError(t, err)

	export, err := f.svc.ExportForBuilder(ctx, builderID, transport.ExportInquiriesRequest{Status: "new"})
	require.NoError(t, err)
	assert.Len(t, export.Items, 1)
	assert.Equal(t, DefaultTimezone, export.Timezone)
	assert.False(t, export.Truncated)
	require.NotNil(t, f.repo.lastParams.From)
	require.NotNil(t, f.repo.lastParams.To)
	assert.Equal(t, exportBatchSize, f.repo.lastParams.Limit)

	export, err = f.svc.ExportForBuilder(ctx, uuid.New(), transport.ExportInquiriesRequest{})
	require.NoError(t, err)
	assert.Empty(t, export.Items)

	_, err = f.svc.ExportForBuilder(ctx, builderID, transport.ExportInquiriesRequest{Timezone: "Nowhere/Land"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
