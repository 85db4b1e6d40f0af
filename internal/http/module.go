package http

import "github.com/gin-gonic/gin"

// RouterContext carries the route groups a module can mount handlers on.
type RouterContext struct {
	// Public is the /api/v1 group with no authentication.
	Public *gin.RouterGroup
	// Protected is the /api/v1 group behind JWT authentication.
	Protected *gin.RouterGroup
}

// Module is an HTTP-facing bounded context that registers its own routes.
type Module interface {
	// Name returns the module identifier, used for logging.
	Name() string
	// RegisterRoutes mounts the module's routes on the router context.
	RegisterRoutes(ctx *RouterContext)
}
