// Package investments provides the customer investments module: bookings
// against listings, construction progress and the returns calculator.
package investments

import (
	"estate_portal_backend/internal/events"
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/internal/investments/handler"
	"estate_portal_backend/internal/investments/repository"
	"estate_portal_backend/internal/investments/service"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the investments module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the investments module.
func NewModule(pool *pgxpool.Pool, listings service.ListingReader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), listings, bus, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "investments"
}

// RegisterRoutes mounts investment routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/investments/returns", m.handler.Returns)

	ctx.Customer.POST("/investments", ctx.WriteRateLimiter.RateLimit(), m.handler.Create)
	ctx.Customer.GET("/customer/investments", m.handler.Portfolio)
	ctx.Protected.GET("/investments/:id", m.handler.Get)

	ctx.Builder.GET("/builder/investments", m.handler.ListForBuilder)
	ctx.Builder.PATCH("/builder/investments/:id/progress", m.handler.UpdateProgress)
	ctx.Builder.PATCH("/builder/investments/:id/status", m.handler.UpdateStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
