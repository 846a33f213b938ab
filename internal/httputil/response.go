// Package httputil holds response helpers shared by the API handlers and
// middleware.
package httputil

import "github.com/gin-gonic/gin"

// RespondError writes the standard `{code, message, request_id}` error body
// and aborts the request. The request ID is included when the request ID
// middleware has run.
func RespondError(c *gin.Context, status int, code, message string) {
	resp := map[string]string{
		"code":    code,
		"message": message,
	}

	if rid := c.GetString("request_id"); rid != "" {
		resp["request_id"] = rid
	}

	c.AbortWithStatusJSON(status, resp)
}
