package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estate_portal_backend/internal/loans/service"
	"estate_portal_backend/internal/loans/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var knownListing = uuid.MustParse("00000000-0000-0000-0000-000000000007")

type prices struct{}

func (prices) StartingPrice(_ context.Context, id uuid.UUID) (int64, error) {
	if id == knownListing {
		return 1_00_00_000, nil
	}
	return 0, apperr.NotFound("listing not found")
}

func newRouter() *gin.Engine {
	h := New(service.New(prices{}), validator.New())
	r := gin.New()
	r.POST("/loans/emi", h.EMI)
	r.POST("/loans/schedule", h.Schedule)
	r.POST("/loans/eligibility", h.Eligibility)
	r.GET("/listings/:id/emi", h.ForListing)
	return r
}

func post(r http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestEMIEndpoint(t *testing.T) {
	rec := post(newRouter(), "/loans/emi", `{"principal":8000000,"annualRatePercent":8.5,"tenureYears":20}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.EMIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(69426), resp.MonthlyPayment)
	assert.Equal(t, "₹69,426", resp.MonthlyPaymentFormatted)
	assert.Nil(t, resp.Breakdown)
}

func TestEMIEndpointRejectsInvalidParameters(t *testing.T) {
	rec := post(newRouter(), "/loans/emi", `{"principal":0,"annualRatePercent":8.5,"tenureYears":20}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_LOAN_PARAMETERS")

	rec = post(newRouter(), "/loans/emi", `{"principal":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleEndpoint(t *testing.T) {
	rec := post(newRouter(), "/loans/schedule", `{"principal":8000000,"annualRatePercent":8.5,"tenureYears":20}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Years, 20)
	assert.Equal(t, int64(0), resp.Years[19].ClosingBalance)
}

func TestEligibilityEndpoint(t *testing.T) {
	rec := post(newRouter(), "/loans/eligibility",
		`{"principal":8000000,"annualRatePercent":8.5,"tenureYears":20,"monthlyIncome":200000,"existingEmis":10000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.EligibilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Eligible)
	assert.Equal(t, int64(70000), resp.MaxAffordableEMI)
}

func TestForListingEndpoint(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/"+knownListing.String()+"/emi", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.ListingEMIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(8000000), resp.Principal)
	assert.Equal(t, int64(69426), resp.EMI.MonthlyPayment)
	assert.Equal(t, "₹1 Cr", resp.PropertyPriceFormatted)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/"+uuid.NewString()+"/emi", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/"+knownListing.String()+"/emi?tenure=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
