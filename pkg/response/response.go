package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends 200 JSON with the given body.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends the error envelope with the given HTTP status.
func Error(c *gin.Context, status int, body ErrorBody, sessionID string) {
	c.JSON(status, ErrorResp{Error: body, SessionID: sessionID})
}

// BadRequest sends 400 with an invalid_input error.
func BadRequest(c *gin.Context, message string, sessionID string) {
	Error(c, http.StatusBadRequest, ErrorBody{
		Code:    CodeInvalidInput,
		Message: message,
	}, sessionID)
}

// NotFound sends 404 with the given code and message.
func NotFound(c *gin.Context, code, message string, sessionID string) {
	Error(c, http.StatusNotFound, ErrorBody{
		Code:    code,
		Message: message,
	}, sessionID)
}

// TooManyRequests sends 429 with a retry hint.
func TooManyRequests(c *gin.Context, retryAfter int) {
	Error(c, http.StatusTooManyRequests, ErrorBody{
		Code:       CodeRateLimited,
		Message:    "You're sending messages too quickly. Please wait a moment before trying again.",
		RetryAfter: retryAfter,
	}, "")
}

// InternalError sends 500 with a generic message; details are never leaked.
func InternalError(c *gin.Context, sessionID string) {
	Error(c, http.StatusInternalServerError, ErrorBody{
		Code:    CodeInternalError,
		Message: "Something went wrong on my end. Please try again.",
	}, sessionID)
}
