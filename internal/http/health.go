package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/circuitbreaker"
)

// HealthChecker is implemented by dependencies that can probe their own
// connectivity, such as the MongoDB client and the GCS bucket store.
type HealthChecker interface {
	Check() error
}

// HealthHandler serves the liveness and readiness probes. The app wiring
// registers a checker per dependency and a breaker per guarded upstream
// (Shopify, MongoDB) so readiness reflects real ability to serve.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a HealthHandler with no registered checks.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker registers a dependency health checker under the given name.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker registers a circuit breaker for readiness reporting.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.circuitBreakers[name] = cb
}

// Register mounts the probe endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the service is running. Used by Kubernetes and other orchestration platforms to determine if the service should be restarted.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns OK when every registered dependency check passes and no circuit breaker is open. Used by load balancers and orchestration platforms.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	status := http.StatusOK
	checks := make(map[string]interface{})

	for name, checker := range h.checkers {
		if err := checker.Check(); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[name] = "ok"
		}
	}

	// An open breaker means the dependency is failing even if its
	// connectivity check still passes.
	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			status = http.StatusServiceUnavailable
		}
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}
