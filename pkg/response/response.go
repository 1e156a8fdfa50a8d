package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is what the API returns on failure. Clients read Error as the
// human readable reason; Details maps a request field to what is wrong with it.
type ErrorBody struct {
	Error     string            `json:"error"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// JSON renders a resource as-is, defaulting to 200.
func JSON(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Error aborts the request with an ErrorBody.
func Error(ctx *gin.Context, status int, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{
		Error:     message,
		Details:   details,
		RequestID: ctx.GetString("request_id"),
	})
}
