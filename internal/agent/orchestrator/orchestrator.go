package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopping-assistant/internal/session"
	"shopping-assistant/pkg/llmprovider"
)

// ProcessMessage runs the bounded model/tool loop for one inbound
// message. It executes entirely inside the session lock, so concurrent
// messages to the same session append their turns as contiguous blocks.
func (o *Orchestrator) ProcessMessage(ctx context.Context, sessionID, message string, reqContext map[string]any) (*Output, error) {
	out := &Output{}

	id, err := o.store.WithSessionCreate(ctx, sessionID, func(sess *session.Session) error {
		return o.runLoop(ctx, sess, message, reqContext, out)
	})
	out.SessionID = id
	if err != nil {
		return nil, err
	}
	return out, nil
}

// runLoop is the per-message state machine: AWAITING_MODEL asks the
// model for a final answer or tool requests, EXECUTING_TOOL runs the
// requested tools in order, DONE ends the loop. The iteration counter
// caps model invocations; exhaustion degrades to fallback text.
func (o *Orchestrator) runLoop(ctx context.Context, sess *session.Session, message string, reqContext map[string]any, out *Output) error {
	if len(reqContext) > 0 {
		sess.UpdatePreferences(reqContext)
	}

	sess.Append(session.Turn{
		Role:      session.RoleUser,
		Content:   message,
		Timestamp: time.Now(),
	})

	msgs := historyToMessages(sess.History(o.cfg.HistoryWindow))
	tools := o.registry.ToFunctionDefinitions()
	system := &llmprovider.Message{
		Role:  "system",
		Parts: []llmprovider.Part{{Text: SystemPromptAssistant}},
	}

	state := stateAwaitingModel
	for iteration := 1; iteration <= o.cfg.MaxIterations; iteration++ {
		o.l.Debugf(ctx, LogMsgIteration, iteration, o.cfg.MaxIterations, sess.ID)

		resp, err := o.llm.GenerateContent(ctx, &llmprovider.Request{
			SystemInstruction: system,
			Messages:          msgs,
			Tools:             tools,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Model outage is a local, non-fatal outcome. No retry here,
			// the provider manager already exhausted its own policy.
			o.l.Errorf(ctx, LogMsgModelFailed, err)
			o.finish(sess, out, FallbackModelUnavailable, true)
			return nil
		}

		calls := functionCalls(resp.Content)
		if len(calls) == 0 {
			state = stateDone
			text := textContent(resp.Content)
			if text == "" {
				o.l.Warnf(ctx, "empty model response for session %s", sess.ID)
				o.finish(sess, out, FallbackModelUnavailable, true)
				return nil
			}
			o.l.Infof(ctx, LogMsgFinalAnswer, iteration, sess.ID)
			o.finish(sess, out, text, false)
			out.Suggestions = deriveSuggestions(message, text)
			return nil
		}

		// The model's tool request stays in the context so it can see
		// what it asked for.
		state = stateExecutingTool
		msgs = append(msgs, resp.Content)

		// Sequential on purpose: each result lands in the transcript
		// before the next tool runs, so later tools may depend on it.
		responseParts := make([]llmprovider.Part, 0, len(calls))
		for _, call := range calls {
			result := o.executeTool(ctx, call)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sess.Append(session.Turn{
				Role:      session.RoleTool,
				Tool:      &result,
				Timestamp: time.Now(),
			})
			responseParts = append(responseParts, llmprovider.Part{
				FunctionResponse: &llmprovider.FunctionResponse{
					Name:     call.Name,
					Response: toolPayload(result),
				},
			})
		}
		msgs = append(msgs, llmprovider.Message{Role: "function", Parts: responseParts})
		state = stateAwaitingModel
	}

	if state != stateDone {
		o.l.Warnf(ctx, LogMsgIterationLimit, o.cfg.MaxIterations, sess.ID)
		o.finish(sess, out, FallbackIterationLimit, true)
	}
	return nil
}

// finish records the assistant turn and fills the output.
func (o *Orchestrator) finish(sess *session.Session, out *Output, text string, degraded bool) {
	sess.Append(session.Turn{
		Role:      session.RoleAssistant,
		Content:   text,
		Timestamp: time.Now(),
	})
	out.Text = text
	out.Degraded = degraded
}

// executeTool resolves and runs one requested tool. Failures never
// abort the loop; they become error results the model can recover from.
func (o *Orchestrator) executeTool(ctx context.Context, call *llmprovider.FunctionCall) session.ToolResult {
	tool, ok := o.registry.Get(call.Name)
	if !ok {
		o.l.Warnf(ctx, LogMsgUnknownTool, call.Name)
		return session.ToolResult{
			Name:   call.Name,
			Status: "error",
			Error:  fmt.Sprintf("unknown tool %q", call.Name),
		}
	}

	o.l.Infof(ctx, LogMsgCallingTool, call.Name, call.Args)
	res, err := tool.Execute(ctx, call.Args)
	if err != nil {
		o.l.Errorf(ctx, LogMsgToolFailed, call.Name, err)
		return session.ToolResult{Name: call.Name, Status: "error", Error: err.Error()}
	}
	return session.ToolResult{Name: call.Name, Status: "ok", Result: res}
}

// historyToMessages converts transcript turns into model messages.
func historyToMessages(turns []session.Turn) []llmprovider.Message {
	msgs := make([]llmprovider.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case session.RoleUser:
			msgs = append(msgs, llmprovider.Message{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: turn.Content}},
			})
		case session.RoleAssistant:
			msgs = append(msgs, llmprovider.Message{
				Role:  "model",
				Parts: []llmprovider.Part{{Text: turn.Content}},
			})
		case session.RoleTool:
			if turn.Tool == nil {
				continue
			}
			// Function call/response pairs are only valid inside the
			// exchange that produced them; the transcript keeps the
			// response but not the model's call, so a replayed pair
			// would be rejected by the providers. Past results go back
			// as plain text instead.
			msgs = append(msgs, llmprovider.Message{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: renderToolTurn(*turn.Tool)}},
			})
		}
	}
	return msgs
}

// renderToolTurn flattens a past tool result into text context.
func renderToolTurn(result session.ToolResult) string {
	payload, err := json.Marshal(toolPayload(result))
	if err != nil {
		payload = []byte("{}")
	}
	return fmt.Sprintf("[%s result] %s", result.Name, payload)
}

func functionCalls(msg llmprovider.Message) []*llmprovider.FunctionCall {
	var calls []*llmprovider.FunctionCall
	for _, p := range msg.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

func textContent(msg llmprovider.Message) string {
	text := ""
	for _, p := range msg.Parts {
		text += p.Text
	}
	return text
}

func toolPayload(result session.ToolResult) any {
	if result.Status == "ok" {
		return result.Result
	}
	return map[string]string{"error": result.Error}
}
