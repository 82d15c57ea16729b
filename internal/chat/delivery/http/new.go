package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"shopping-assistant/internal/agent/orchestrator"
	"shopping-assistant/internal/session"
	"shopping-assistant/pkg/log"
)

// Handler is the public interface for the chat HTTP delivery layer.
type Handler interface {
	Chat(c *gin.Context)
	SessionInfo(c *gin.Context)
	DeleteSession(c *gin.Context)
	CleanupSessions(c *gin.Context)
}

type handler struct {
	l              log.Logger
	orch           *orchestrator.Orchestrator
	store          *session.Store
	requestTimeout time.Duration
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, orch *orchestrator.Orchestrator, store *session.Store, requestTimeout time.Duration) *handler {
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}
	return &handler{
		l:              l,
		orch:           orch,
		store:          store,
		requestTimeout: requestTimeout,
	}
}
