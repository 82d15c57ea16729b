package http

import (
	"github.com/gin-gonic/gin"

	"shopping-assistant/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Only the chat endpoint is rate limited; the admin endpoints are cheap.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.POST("/chat", mw.RateLimit(), h.Chat)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("/cleanup", h.CleanupSessions)
		sessions.GET("/:id", h.SessionInfo)
		sessions.DELETE("/:id", h.DeleteSession)
	}
}
