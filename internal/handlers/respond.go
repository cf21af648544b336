package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// respondError writes a {"message": ...} error body.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// logAndRespondError logs err with request context and writes message.
// err is never sent to the client.
func logAndRespondError(c *gin.Context, status int, err error, message string) {
	slog.ErrorContext(c.Request.Context(), message,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", status,
		"error", err,
	)
	respondError(c, status, message)
}

// respondMessage writes a {"message": ...} success body.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// pathID parses the named path parameter. Non-integer ids do not match any
// resource, so they answer 404 like a missing row would.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusNotFound, "Resource not found.")
		return 0, false
	}
	return id, true
}
