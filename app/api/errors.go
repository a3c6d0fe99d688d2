package api

import "github.com/gin-gonic/gin"

var errorCodes = map[int]string{
	400: "validation_error",
	401: "unauthorized",
	403: "forbidden",
	404: "not_found",
	409: "conflict",
	413: "payload_too_large",
	422: "validation_error",
	429: "rate_limited",
	502: "ai_provider_error",
}

// respondError writes the JSON error envelope and aborts the request.
func respondError(c *gin.Context, status int, message string) {
	code, ok := errorCodes[status]
	if !ok {
		code = "internal_error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}
