package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"shopping-assistant/pkg/response"
)

// Chat godoc
// @Summary     Process a chat message
// @Description Runs the model/tool loop for one user message and returns the assistant's reply with optional follow-up suggestions.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Chat message"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.ErrorResp "Bad Request"
// @Failure     429 {object} response.ErrorResp "Too Many Requests"
// @Failure     504 {object} response.ErrorResp "Request Timeout"
// @Router      /api/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	req, err := h.processChatReq(c)
	if err != nil {
		response.BadRequest(c, err.Error(), req.SessionID)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	out, err := h.orch.ProcessMessage(ctx, req.SessionID, req.Message, req.Context)
	if err != nil {
		h.l.Errorf(ctx, "orch.ProcessMessage: %v", err)
		h.respondError(c, err, req.SessionID)
		return
	}

	response.OK(c, newChatResp(out))
}

// SessionInfo godoc
// @Summary     Get session transcript
// @Description Returns session metadata and the full conversation transcript.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionInfoResp
// @Failure     404 {object} response.ErrorResp "Not Found"
// @Router      /api/sessions/{id} [GET]
func (h *handler) SessionInfo(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	info, err := h.store.GetInfo(ctx, id)
	if err != nil {
		h.respondError(c, err, id)
		return
	}

	response.OK(c, newSessionInfoResp(info))
}

// DeleteSession godoc
// @Summary     Delete a session
// @Description Removes a session and its transcript. Idempotent: deleting an absent session still returns 200.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} deleteSessionResp
// @Router      /api/sessions/{id} [DELETE]
func (h *handler) DeleteSession(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	id := c.Param("id")
	deleted, err := h.store.Delete(ctx, id)
	if err != nil {
		h.respondError(c, err, id)
		return
	}

	msg := fmt.Sprintf("Session %s deleted successfully", id)
	if !deleted {
		msg = fmt.Sprintf("Session %s was not present", id)
	}
	response.OK(c, deleteSessionResp{Message: msg, Deleted: deleted})
}

// CleanupSessions godoc
// @Summary     Sweep expired sessions
// @Description Triggers an immediate expiration sweep and reports how many sessions were removed.
// @Tags        Sessions
// @Produce     json
// @Success     200 {object} cleanupResp
// @Router      /api/sessions/cleanup [POST]
func (h *handler) CleanupSessions(c *gin.Context) {
	cleaned := h.store.SweepNow()
	response.OK(c, cleanupResp{
		Message:         fmt.Sprintf("Cleaned up %d expired sessions", cleaned),
		CleanedSessions: cleaned,
	})
}
