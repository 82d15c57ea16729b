package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shopping-assistant/internal/backend"
	chatHTTP "shopping-assistant/internal/chat/delivery/http"
	"shopping-assistant/internal/middleware"
	"shopping-assistant/internal/session"
	"shopping-assistant/pkg/llmprovider"
	"shopping-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Chat domain
	chatHandler chatHTTP.Handler
	mw          middleware.Middleware

	// Shared state surfaced by the health/status endpoints
	store   *session.Store
	backend *backend.Client
	llm     *llmprovider.Manager
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	ChatHandler chatHTTP.Handler
	Middleware  middleware.Middleware

	Store   *session.Store
	Backend *backend.Client
	LLM     *llmprovider.Manager
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.Default(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		chatHandler: cfg.ChatHandler,
		mw:          cfg.Middleware,
		store:       cfg.Store,
		backend:     cfg.Backend,
		llm:         cfg.LLM,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatHandler == nil {
		return errors.New("chat handler is required")
	}
	if srv.store == nil {
		return errors.New("session store is required")
	}
	return nil
}
