package handler

import (
	"net/http"

	"estate_portal_backend/internal/loans/service"
	"estate_portal_backend/internal/loans/transport"
	"estate_portal_backend/platform/httpkit"
	"estate_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the loan calculator.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid listing id"
)

// New creates a new loans handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return false
	}
	return true
}

// EMI computes the monthly installment.
// POST /api/v1/loans/emi
func (h *Handler) EMI(c *gin.Context) {
	var req transport.EMIRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Calculate(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Schedule computes the yearly amortization table.
// POST /api/v1/loans/schedule
func (h *Handler) Schedule(c *gin.Context) {
	var req transport.EMIRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Schedule(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Eligibility checks affordability against income.
// POST /api/v1/loans/eligibility
func (h *Handler) Eligibility(c *gin.Context) {
	var req transport.EligibilityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Eligibility(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ForListing computes the EMI for a listing's starting price.
// GET /api/v1/listings/:id/emi
func (h *Handler) ForListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var q transport.ListingEMIQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ForListing(c.Request.Context(), id, q)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
