package handler

import (
	"net/http"

	"estate_portal_backend/internal/listings/service"
	"estate_portal_backend/internal/listings/transport"
	"estate_portal_backend/platform/httpkit"
	"estate_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for listings.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid listing id"
	msgInvalidBuilderID = "invalid builder id"
)

// New creates a new listings handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Browse runs the listing pipeline.
// GET /api/v1/listings
func (h *Handler) Browse(c *gin.Context) {
	var req transport.BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	result, err := h.svc.Browse(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Featured lists featured listings.
// GET /api/v1/listings/featured
func (h *Handler) Featured(c *gin.Context) {
	result, err := h.svc.Featured(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Upcoming lists listings with a future possession date.
// GET /api/v1/listings/upcoming
func (h *Handler) Upcoming(c *gin.Context) {
	result, err := h.svc.Upcoming(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Facets returns the filter options.
// GET /api/v1/listings/facets
func (h *Handler) Facets(c *gin.Context) {
	result, err := h.svc.Facets(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns one active listing.
// GET /api/v1/listings/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidID)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ShareQR renders a QR code of the public listing URL.
// GET /api/v1/listings/:id/share-qr
func (h *Handler) ShareQR(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidID)
	if !ok {
		return
	}

	png, err := h.svc.ShareQR(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// ByBuilder lists the active listings of a builder.
// GET /api/v1/builders/:builderId/listings
func (h *Handler) ByBuilder(c *gin.Context) {
	builderID, ok := parseID(c, "builderId", msgInvalidBuilderID)
	if !ok {
		return
	}

	result, err := h.svc.ByBuilder(c.Request.Context(), builderID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func parseID(c *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, message, nil)
		return uuid.Nil, false
	}
	return id, true
}
