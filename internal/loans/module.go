// Package loans provides the loan calculator module.
package loans

import (
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/internal/loans/handler"
	"estate_portal_backend/internal/loans/service"
	"estate_portal_backend/platform/validator"
)

// Module is the loans module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the loans module. listings resolves listing prices for
// the per-listing EMI endpoint.
func NewModule(listings service.ListingPriceReader, val *validator.Validator) *Module {
	svc := service.New(listings)
	return &Module{handler: handler.New(svc, val), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "loans"
}

// RegisterRoutes mounts loan routes. The calculator is public.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	loans := ctx.V1.Group("/loans")
	loans.POST("/emi", m.handler.EMI)
	loans.POST("/schedule", m.handler.Schedule)
	loans.POST("/eligibility", m.handler.Eligibility)

	ctx.V1.GET("/listings/:id/emi", m.handler.ForListing)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
