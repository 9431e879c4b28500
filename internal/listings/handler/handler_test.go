package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"estate_portal_backend/internal/listings/cache"
	"estate_portal_backend/internal/listings/domain"
	"estate_portal_backend/internal/listings/service"
	"estate_portal_backend/internal/listings/transport"
	"estate_portal_backend/platform/apperr"
	platformevents "estate_portal_backend/platform/events"
	"estate_portal_backend/platform/httpkit"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubConfig struct{}

func (stubConfig) GetAppBaseURL() string             { return "https://estate.test" }
func (stubConfig) GetListingCacheTTL() time.Duration { return time.Minute }
func (stubConfig) GetDefaultPageSize() int           { return 12 }

// memRepo keeps listings in insertion order.
type memRepo struct {
	items []domain.Listing
}

func (r *memRepo) index(id uuid.UUID) int {
	for i, l := range r.items {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (r *memRepo) ListByStatus(_ context.Context, status domain.Status) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range r.items {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memRepo) ListByBuilder(_ context.Context, builderID uuid.UUID) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range r.items {
		if l.BuilderID == builderID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Listing, error) {
	if i := r.index(id); i >= 0 {
		return r.items[i], nil
	}
	return domain.Listing{}, apperr.NotFound("listing not found")
}

func (r *memRepo) Create(_ context.Context, l domain.Listing) (domain.Listing, error) {
	l.ID = uuid.New()
	r.items = append(r.items, l)
	return l, nil
}

func (r *memRepo) Update(_ context.Context, l domain.Listing) (domain.Listing, error) {
	i := r.index(l.ID)
	if i < 0 {
		return domain.Listing{}, apperr.NotFound("listing not found")
	}
	r.items[i] = l
	return l, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.Status) (domain.Listing, error) {
	i := r.index(id)
	if i < 0 {
		return domain.Listing{}, apperr.NotFound("listing not found")
	}
	r.items[i].Status = status
	return r.items[i], nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	i := r.index(id)
	if i < 0 {
		return apperr.NotFound("listing not found")
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *memRepo) IncrementViews(context.Context, uuid.UUID) error     { return nil }
func (r *memRepo) IncrementInquiries(context.Context, uuid.UUID) error { return nil }

var (
	ownerID   = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	listingID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
)

func newRouter(t *testing.T, asUser *uuid.UUID) *gin.Engine {
	t.Helper()
	repo := &memRepo{items: []domain.Listing{{
		ID: listingID, Name: "Skyline Towers", BuilderID: ownerID, BuilderName: "Skyline",
		Location:     domain.Location{City: "Mumbai", Area: "Andheri"},
		PriceRange:   domain.PriceRange{Min: 1_00_00_000, Max: 2_00_00_000},
		PropertyType: domain.PropertyTypeResidential,
		Status:       domain.StatusActive,
	}}}

	log := logger.Discard()
	val := validator.New()
	require.NoError(t, transport.RegisterValidations(val))
	svc := service.New(repo, cache.NewSnapshotStore(nil, time.Minute, log), platformevents.NewInMemoryBus(log), stubConfig{}, log)
	h := New(svc, val)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if asUser != nil {
			c.Set(httpkit.ContextUserIDKey, *asUser)
			c.Set(httpkit.ContextRolesKey, []string{httpkit.RoleBuilder})
			c.Set(httpkit.ContextNameKey, "Skyline")
		}
		c.Next()
	})
	r.GET("/listings", h.Browse)
	r.GET("/listings/:id", h.Get)
	r.GET("/listings/:id/share-qr", h.ShareQR)
	r.POST("/listings", h.Create)
	r.PATCH("/listings/:id/status", h.UpdateStatus)
	r.DELETE("/listings/:id", h.Delete)
	r.GET("/builder/analytics", h.Analytics)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBrowseReturnsPage(t *testing.T) {
	rec := do(newRouter(t, nil), http.MethodGet, "/listings?location=mumbai&sort=price-high&page=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page transport.ListingPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, "Skyline Towers", page.Items[0].Name)
	assert.Equal(t, "₹1 Cr - ₹2 Cr", page.Items[0].PriceLabel)
}

func TestBrowseValidationErrorsNameFields(t *testing.T) {
	rec := do(newRouter(t, nil), http.MethodGet, "/listings?sort=cheapest&pageSize=500", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body httpkit.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sortkey", details["sort"])
	assert.Equal(t, "max", details["pageSize"])
}

func TestBrowseRejectsBadPriceRange(t *testing.T) {
	rec := do(newRouter(t, nil), http.MethodGet, "/listings?priceRange=9-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_PRICE_RANGE")
}

func TestGetRejectsMalformedID(t *testing.T) {
	rec := do(newRouter(t, nil), http.MethodGet, "/listings/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newRouter(t, nil), http.MethodGet, "/listings/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareQRServesPNG(t *testing.T) {
	rec := do(newRouter(t, nil), http.MethodGet, "/listings/"+listingID.String()+"/share-qr", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestCreateRequiresIdentity(t *testing.T) {
	body := `{"name":"Palm Grove","location":{"city":"Pune"},"priceMin":1,"priceMax":2,"propertyType":"Residential"}`

	rec := do(newRouter(t, nil), http.MethodPost, "/listings", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(newRouter(t, &ownerID), http.MethodPost, "/listings", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"builderName":"Skyline"`)
	assert.Contains(t, rec.Body.String(), `"status":"draft"`)
}

func TestCreateValidatesPriceOrder(t *testing.T) {
	body := `{"name":"Palm Grove","location":{"city":"Pune"},"priceMin":5,"priceMax":2,"propertyType":"Residential"}`
	rec := do(newRouter(t, &ownerID), http.MethodPost, "/listings", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "gtefield")
}

func TestStatusAndDeleteEnforceOwnership(t *testing.T) {
	stranger := uuid.New()
	r := newRouter(t, &stranger)

	rec := do(r, http.MethodPatch, "/listings/"+listingID.String()+"/status", `{"status":"sold"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(r, http.MethodDelete, "/listings/"+listingID.String(), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	owner := newRouter(t, &ownerID)
	rec = do(owner, http.MethodPatch, "/listings/"+listingID.String()+"/status", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(owner, http.MethodDelete, "/listings/"+listingID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAnalyticsForOwner(t *testing.T) {
	owner := ownerID
	rec := do(newRouter(t, &owner), http.MethodGet, "/builder/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body transport.AnalyticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Overview.TotalListings)
	assert.Equal(t, 1, body.Overview.ActiveListings)
	require.Len(t, body.Listings, 1)
	assert.Equal(t, "Skyline Towers", body.Listings[0].Name)

	stranger := uuid.New()
	rec = do(newRouter(t, &stranger), http.MethodGet, "/builder/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"listings":[]`)

	rec = do(newRouter(t, nil), http.MethodGet, "/builder/analytics", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
