// Package listings provides the listings bounded context module.
package listings

import (
	"context"

	"estate_portal_backend/internal/adapters/storage"
	"estate_portal_backend/internal/events"
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/internal/listings/cache"
	"estate_portal_backend/internal/listings/handler"
	"estate_portal_backend/internal/listings/repository"
	"estate_portal_backend/internal/listings/service"
	"estate_portal_backend/internal/listings/transport"
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the listings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the listings module. redisClient and
// storageSvc may be nil.
func NewModule(pool *pgxpool.Pool, redisClient redis.Cmdable, storageSvc storage.StorageService, bus events.Bus, val *validator.Validator, cfg *config.Config, log *logger.Logger) (*Module, error) {
	if err := transport.RegisterValidations(val); err != nil {
		return nil, err
	}

	repo := repository.New(pool)
	snapshots := cache.NewSnapshotStore(redisClient, cfg.GetListingCacheTTL(), log)
	svc := service.New(repo, snapshots, bus, cfg, log)
	if storageSvc != nil {
		svc.SetStorage(storageSvc, cfg.GetMinioBucketListingMedia())
	}

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "listings"
}

// Service returns the service layer for adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts listings routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/listings", m.handler.Browse)
	ctx.V1.GET("/listings/featured", m.handler.Featured)
	ctx.V1.GET("/listings/upcoming", m.handler.Upcoming)
	ctx.V1.GET("/listings/facets", m.handler.Facets)
	ctx.V1.GET("/listings/:id", m.handler.Get)
	ctx.V1.GET("/listings/:id/share-qr", m.handler.ShareQR)
	ctx.V1.GET("/builders/:builderId/listings", m.handler.ByBuilder)

	ctx.Builder.GET("/builder/listings", m.handler.Mine)
	ctx.Builder.GET("/builder/analytics", m.handler.Analytics)
	ctx.Builder.POST("/listings", m.handler.Create)
	ctx.Builder.PUT("/listings/:id", m.handler.Update)
	ctx.Builder.PATCH("/listings/:id/status", m.handler.UpdateStatus)
	ctx.Builder.DELETE("/listings/:id", m.handler.Delete)
	ctx.Builder.POST("/listings/:id/media/presign", m.handler.PresignMedia)
}

// RegisterHandlers subscribes to listing changes to drop the cached snapshot.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ListingChanged{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch event.(type) {
	case events.ListingChanged:
		return m.service.InvalidateSnapshot(ctx)
	default:
		return nil
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
