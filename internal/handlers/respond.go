package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse sends a standardized error response and logs at caller if needed
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// logPublishError logs a failed event publish without failing the request;
// the in-memory state is already updated and the publish is best-effort
func logPublishError(kind string, err error) {
	log.Printf("Failed to publish %s event: %v", kind, err)
}
