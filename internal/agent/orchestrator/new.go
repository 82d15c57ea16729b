package orchestrator

import (
	"shopping-assistant/internal/agent"
	"shopping-assistant/internal/session"
	"shopping-assistant/pkg/llmprovider"
	pkgLog "shopping-assistant/pkg/log"
)

// Config bounds the per-message model/tool loop.
type Config struct {
	MaxIterations int // model invocations per message
	HistoryWindow int // most recent turns sent as context
}

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = DefaultHistoryWindow
	}
	return c
}

type Orchestrator struct {
	llm      *llmprovider.Manager
	registry *agent.ToolRegistry
	store    *session.Store
	l        pkgLog.Logger
	cfg      Config
}

func New(llm *llmprovider.Manager, registry *agent.ToolRegistry, store *session.Store, l pkgLog.Logger, cfg Config) *Orchestrator {
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		store:    store,
		l:        l,
		cfg:      cfg.withDefaults(),
	}
}
