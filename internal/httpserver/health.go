package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"shopping-assistant/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "shopping-assistant"

	healthProbeTimeout = 3 * time.Second
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the service is up
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":    "healthy",
		"service":   ServiceName,
		"version":   HealthVersion,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// healthDetailed reports dependency health on top of the basic check.
// @Summary Detailed Health Check
// @Description Health plus backend reachability and model provider status
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Health details"
// @Router /health/detailed [get]
func (srv HTTPServer) healthDetailed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	backendHealthy := false
	if srv.backend != nil {
		backendHealthy = srv.backend.Ping(ctx) == nil
	}

	providers := srv.providerNames()
	activeSessions, totalSessions := srv.store.Count()

	status := "healthy"
	if !backendHealthy || len(providers) == 0 {
		status = "degraded"
	}

	response.OK(c, gin.H{
		"status":    status,
		"service":   ServiceName,
		"version":   HealthVersion,
		"timestamp": time.Now().Format(time.RFC3339),
		"details": gin.H{
			"backend_api_healthy": backendHealthy,
			"backend_breaker_open": srv.backend != nil &&
				srv.backend.BreakerOpen(),
			"model_providers": providers,
			"active_sessions": activeSessions,
			"total_sessions":  totalSessions,
		},
	})
}

// status reports service-wide state for operators.
// @Summary Service Status
// @Description Session counters and configured model providers
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service status"
// @Router /api/status [get]
func (srv HTTPServer) status(c *gin.Context) {
	stats := srv.store.Stats()

	response.OK(c, gin.H{
		"initialized":      srv.llm != nil && len(srv.llm.Providers()) > 0,
		"model_providers":  srv.providerNames(),
		"active_sessions":  stats.ActiveSessions,
		"total_sessions":   stats.TotalSessions,
		"expired_sessions": stats.ExpiredSessions,
		"total_turns":      stats.TotalTurns,
	})
}

func (srv HTTPServer) providerNames() []string {
	if srv.llm == nil {
		return nil
	}
	providers := srv.llm.Providers()
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name()+"/"+p.Model())
	}
	return names
}
