package session

import "time"

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolResult is the structured payload of a tool turn.
type ToolResult struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok" | "error"
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Turn is one message in a conversation transcript. Immutable once
// appended.
type Turn struct {
	Role      Role        `json:"role"`
	Content   string      `json:"content,omitempty"`
	Tool      *ToolResult `json:"tool,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Session holds one conversation. It is owned by the Store; callers
// only ever see it as a lock-scoped view inside WithSession.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
	Turns        []Turn
	Preferences  map[string]any

	maxTurns int
}

func newSession(id string, now time.Time, maxTurns int) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActivity: now,
		Preferences:  make(map[string]any),
		maxTurns:     maxTurns,
	}
}

// Append adds a turn to the transcript, trimming the oldest turns once
// the configured maximum is exceeded. The transcript is append-only
// apart from that trim.
func (s *Session) Append(turn Turn) {
	s.Turns = append(s.Turns, turn)
	if s.maxTurns > 0 && len(s.Turns) > s.maxTurns {
		excess := len(s.Turns) - s.maxTurns
		s.Turns = append([]Turn(nil), s.Turns[excess:]...)
	}
}

// History returns the most recent max turns (all turns when max <= 0).
// The returned slice is a copy; mutating it does not touch the session.
func (s *Session) History(max int) []Turn {
	turns := s.Turns
	if max > 0 && len(turns) > max {
		turns = turns[len(turns)-max:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// UpdatePreferences merges the given preferences into the session.
func (s *Session) UpdatePreferences(prefs map[string]any) {
	for k, v := range prefs {
		s.Preferences[k] = v
	}
}

// Info is a point-in-time snapshot of session metadata used by the
// admin endpoints.
type Info struct {
	SessionID    string         `json:"session_id"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
	TurnCount    int            `json:"turn_count"`
	Preferences  map[string]any `json:"user_preferences"`
	Turns        []Turn         `json:"turns"`
}

// Stats aggregates store-wide counters for status reporting.
type Stats struct {
	TotalSessions   int        `json:"total_sessions"`
	ActiveSessions  int        `json:"active_sessions"`
	ExpiredSessions int        `json:"expired_sessions"`
	TotalTurns      int        `json:"total_turns"`
	OldestSession   *time.Time `json:"oldest_session,omitempty"`
	NewestSession   *time.Time `json:"newest_session,omitempty"`
}
