package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopping-assistant/internal/backend"
	"shopping-assistant/internal/session"
	"shopping-assistant/pkg/response"
)

// respondError translates core errors into the HTTP error envelope.
// Unknown errors never leak details to the caller.
func (h *handler) respondError(c *gin.Context, err error, sessionID string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		response.Error(c, http.StatusGatewayTimeout, response.ErrorBody{
			Code:    response.CodeTimeout,
			Message: "The request took too long to process. Please try again.",
		}, sessionID)

	case errors.Is(err, session.ErrNotFound):
		response.NotFound(c, response.CodeSessionNotFound,
			fmt.Sprintf("Session %s not found or expired", sessionID), sessionID)

	case backend.IsValidation(err):
		response.BadRequest(c, err.Error(), sessionID)

	case backend.IsNotFound(err):
		response.NotFound(c, response.CodeInvalidInput, err.Error(), sessionID)

	case backend.IsUnavailable(err):
		response.Error(c, http.StatusServiceUnavailable, response.ErrorBody{
			Code:       response.CodeBackendUnavailable,
			Message:    "The product service is temporarily unavailable. Please try again shortly.",
			RetryAfter: 30,
		}, sessionID)

	default:
		response.InternalError(c, sessionID)
	}
}
