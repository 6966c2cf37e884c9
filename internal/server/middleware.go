package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// principalKey is the gin context key holding the authenticated user id.
const principalKey = "initflow_principal"

// requireAuth validates the bearer token and stores the principal in the
// request context. Requests without a valid token are aborted with 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := s.issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, userID)
		c.Next()
	}
}

// principal returns the authenticated user id stored by requireAuth.
func principal(c *gin.Context) string {
	return c.GetString(principalKey)
}
