package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// respondError maps a store or auth error to a status code and a
// `{"error": "..."}` body. Unrecognized errors become 500 and are
// logged; sentinel errors carry their own message.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, types.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, types.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	case errors.Is(err, types.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, types.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidEmail),
		errors.Is(err, types.ErrInvalidContent),
		errors.Is(err, types.ErrInvalidRole),
		errors.Is(err, types.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// respondBindError reports a malformed request body or parameter.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}
