// Package response implements the wire envelope the existing clients expect:
// every reply is HTTP 200 with {"success": bool, ...}. Failures carry a
// user-facing message plus an optional error detail.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes {"success":true} merged with the given payload fields.
func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes {"success":false,"message":...}.
func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}

// FailErr is Fail with the underlying error surfaced in the "error" field.
func FailErr(c *gin.Context, message string, err error) {
	body := gin.H{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}
