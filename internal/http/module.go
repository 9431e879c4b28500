package http

import (
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is a feature area (listings, loans, inquiries, investments) that
// mounts its own routes.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext hands modules the route groups they may mount on. Role
// checks are already applied to Builder and Customer.
type RouterContext struct {
	// Engine is for routes outside /api/v1.
	Engine *gin.Engine
	// V1 is public /api/v1.
	V1 *gin.RouterGroup
	// Protected is the authenticated route group under /api/v1.
	Protected *gin.RouterGroup
	// Builder requires the builder (or admin) role.
	Builder *gin.RouterGroup
	// Customer requires the customer (or admin) role.
	Customer *gin.RouterGroup
	// Config and AuthMiddleware let a module build its own protected group.
	Config config.JWTConfig
	// AuthMiddleware validates bearer tokens.
	AuthMiddleware gin.HandlerFunc
	// WriteRateLimiter throttles customer submissions.
	WriteRateLimiter *httpkit.IPRateLimiter
}
