package http

import (
	"errors"
	"time"

	"shopping-assistant/internal/agent/orchestrator"
	"shopping-assistant/internal/session"
)

// --- Request DTOs ---

type chatReq struct {
	Message   string         `json:"message" binding:"required,min=1,max=4000"`
	SessionID string         `json:"session_id"`
	Context   map[string]any `json:"context"`
}

func (r chatReq) validate() error {
	if len(r.Message) == 0 {
		return errors.New("message must not be empty")
	}
	return nil
}

// --- Response DTOs ---

type chatResp struct {
	Response    string   `json:"response"`
	SessionID   string   `json:"session_id"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func newChatResp(out *orchestrator.Output) chatResp {
	return chatResp{
		Response:    out.Text,
		SessionID:   out.SessionID,
		Suggestions: out.Suggestions,
	}
}

type turnResp struct {
	Role      string              `json:"role"`
	Content   string              `json:"content,omitempty"`
	Tool      *session.ToolResult `json:"tool,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

type sessionInfoResp struct {
	SessionID    string         `json:"session_id"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
	MessageCount int            `json:"message_count"`
	Preferences  map[string]any `json:"user_preferences"`
	Turns        []turnResp     `json:"turns"`
}

func newSessionInfoResp(info *session.Info) sessionInfoResp {
	turns := make([]turnResp, len(info.Turns))
	for i, t := range info.Turns {
		turns[i] = turnResp{
			Role:      string(t.Role),
			Content:   t.Content,
			Tool:      t.Tool,
			Timestamp: t.Timestamp,
		}
	}
	return sessionInfoResp{
		SessionID:    info.SessionID,
		CreatedAt:    info.CreatedAt,
		LastActivity: info.LastActivity,
		MessageCount: info.TurnCount,
		Preferences:  info.Preferences,
		Turns:        turns,
	}
}

type deleteSessionResp struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}

type cleanupResp struct {
	Message         string `json:"message"`
	CleanedSessions int    `json:"cleaned_sessions"`
}
