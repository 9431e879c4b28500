package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estate_portal_backend/internal/investments/repository"
	"estate_portal_backend/internal/investments/service"
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

var listingID = uuid.MustParse("00000000-0000-0000-0000-000000000007")

type stubRepo struct{ created int }

func (r *stubRepo) Create(_ context.Context, inv repository.Investment) (repository.Investment, error) {
	r.created++
	inv.ID = uuid.New()
	return inv, nil
}
func (r *stubRepo) GetByID(context.Context, uuid.UUID) (repository.Investment, error) {
	return repository.Investment{}, apperr.NotFound("investment not found")
}
func (r *stubRepo) ListForCustomer(context.Context, uuid.UUID) ([]repository.Investment, error) {
	return nil, nil
}
func (r *stubRepo) ListForBuilder(context.Context, uuid.UUID) ([]repository.Investment, error) {
	return nil, nil
}
func (r *stubRepo) UpdateProgress(context.Context, uuid.UUID, repository.Snapshot, repository.Progress) (repository.Investment, error) {
	return repository.Investment{}, apperr.NotFound("investment not found")
}
func (r *stubRepo) UpdateStatus(context.Context, uuid.UUID, string, string) (repository.Investment, error) {
	return repository.Investment{}, apperr.NotFound("investment not found")
}

type stubListings struct{}

func (stubListings) ActiveListing(_ context.Context, id uuid.UUID) (service.ListingSummary, error) {
	if id != listingID {
		return service.ListingSummary{}, apperr.NotFound("listing not found")
	}
	return service.ListingSummary{ID: id, Name: "Skyline Towers", BuilderID: uuid.New()}, nil
}

func newRouter(repo *stubRepo) *gin.Engine {
	log := logger.Discard()
	h := New(service.New(repo, stubListings{}, platformevents.NewInMemoryBus(log), log), validator.New())

	r := gin.New()
	r.POST("/investments/returns", h.Returns)
	auth := r.Group("")
	auth.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, uuid.New())
		c.Set(httpkit.ContextRolesKey, []string{httpkit.RoleCustomer})
		c.Next()
	})
	auth.POST("/investments", h.Create)
	auth.GET("/investments/:id", h.Get)
	auth.GET("/customer/investments", h.Portfolio)
	auth.PATCH("/builder/investments/:id/progress", h.UpdateProgress)
	return r
}

func send(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestReturnsCalculator(t *testing.T) {
	rec := send(newRouter(&stubRepo{}), http.MethodPost, "/investments/returns",
		`{"purchasePrice":5000000,"currentPrice":7200000,"years":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2200000.0, body["totalReturn"])
	assert.Equal(t, 44.0, body["totalReturnPercentage"])
	assert.Equal(t, 9.54, body["annualizedReturn"])
}

func TestReturnsCalculatorValidates(t *testing.T) {
	rec := send(newRouter(&stubRepo{}), http.MethodPost, "/investments/returns", `{"purchasePrice":0,"currentPrice":10,"years":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "purchasePrice")
}

func TestCreateInvestment(t *testing.T) {
	repo := &stubRepo{}
	r := newRouter(repo)

	rec := send(r, http.MethodPost, "/investments", `{"listingId":"`+listingID.String()+`","amount":2500000,"investmentType":"partial"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"investmentType":"partial"`)
	assert.Equal(t, 1, repo.created)

	rec = send(r, http.MethodPost, "/investments", `{"listingId":"`+listingID.String()+`","amount":100,"investmentType":"lease"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "investmentType")

	rec = send(r, http.MethodPost, "/investments", `{"listingId":"`+uuid.NewString()+`","amount":100}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, repo.created)
}

func TestProgressValidation(t *testing.T) {
	r := newRouter(&stubRepo{})

	rec := send(r, http.MethodPatch, "/builder/investments/"+uuid.NewString()+"/progress", `{"stage":"roofing","percentage":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(r, http.MethodPatch, "/builder/investments/"+uuid.NewString()+"/progress", `{"stage":"structure","percentage":101}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(r, http.MethodPatch, "/builder/investments/xyz/progress", `{"stage":"structure","percentage":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(r, http.MethodPatch, "/builder/investments/"+uuid.NewString()+"/progress", `{"stage":"structure","percentage":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPortfolioEmpty(t *testing.T) {
	rec := send(newRouter(&stubRepo{}), http.MethodGet, "/customer/investments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalInvested":0`)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}
