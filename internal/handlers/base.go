package handlers

import (
	"errors"
	"log"
	"net/http"

	"launchpit/internal/services"

	"github.com/gin-gonic/gin"
)

// AbortWithError maps the service error taxonomy onto HTTP responses.
// Storage failures surface as 500s with the error logged; they are never
// degraded to empty results.
func AbortWithError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this resource"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrDuplicateSlug.Error()})
	case errors.Is(err, services.ErrSubmissionLimit):
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrSubmissionLimit.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
