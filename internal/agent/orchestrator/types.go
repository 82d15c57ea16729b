package orchestrator

// loopState enumerates the per-message state machine positions.
type loopState int

const (
	stateAwaitingModel loopState = iota
	stateExecutingTool
	stateDone
)

// Output is the result of processing one message.
type Output struct {
	Text        string
	SessionID   string
	Suggestions []string
	Degraded    bool // fallback text was substituted for a real answer
}
