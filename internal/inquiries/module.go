// Package inquiries provides the customer inquiries module.
package inquiries

import (
	"estate_portal_backend/internal/events"
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/internal/inquiries/handler"
	"estate_portal_backend/internal/inquiries/repository"
	"estate_portal_backend/internal/inquiries/service"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the inquiries module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the inquiries module.
func NewModule(pool *pgxpool.Pool, listings service.ListingReader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), listings, bus, log)
	return &Module{handler: handler.New(svc, val), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "inquiries"
}

// RegisterRoutes mounts inquiry routes. Submissions share the write limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Customer.POST("/listings/:id/inquiries", ctx.WriteRateLimiter.RateLimit(), m.handler.Submit)
	ctx.Customer.GET("/customer/inquiries", m.handler.ListMine)

	ctx.Builder.GET("/builder/inquiries", m.handler.ListInbox)
	ctx.Builder.GET("/builder/inquiries/export", m.handler.Export)
	ctx.Builder.PATCH("/builder/inquiries/:id/status", m.handler.UpdateStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
