// Package http assembles the gin engine from feature modules.
package http

import (
	"context"

	"estate_portal_backend/internal/events"
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker is a dependency the readiness check pings.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is everything cmd/api wires before building the router.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health is keyed by dependency name in the /api/health/ready body.
	Health   map[string]HealthChecker
	EventBus events.Bus
	Modules  []Module
}
