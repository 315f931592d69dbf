package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/service"
)

// IssueRoutes handles magazine issue route registration.
type IssueRoutes struct {
	handler *IssuesHandler
}

// NewIssueRoutes creates a new IssueRoutes instance.
func NewIssueRoutes(issueService service.IssueService) *IssueRoutes {
	return &IssueRoutes{
		handler: NewIssuesHandler(issueService),
	}
}

// RegisterPublicRoutes registers the read-only issue routes.
// Static segments win over :number, so /issue/count and /issue/latest
// coexist with /issue/:number.
func (r *IssueRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	issue := rg.Group("/issue")
	{
		issue.GET("/count", r.handler.Count)
		issue.GET("/latest", r.handler.Latest)
		issue.GET("/:number", r.handler.ByNumber)
	}
	rg.GET("/issue_data/:number", r.handler.Data)
}

// RegisterProtectedRoutes registers the routes that require JWT authentication.
func (r *IssueRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	protected.POST("/upload", r.handler.Upload)
}

// GetHandler returns the underlying issues handler.
func (r *IssueRoutes) GetHandler() *IssuesHandler {
	return r.handler
}
