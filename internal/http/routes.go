package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup defines routes registered without authentication, such
// as the checkout endpoints and issue downloads.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes that sit behind JWT or API-key auth,
// such as issue uploads.
type ProtectedRouteGroup interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}
