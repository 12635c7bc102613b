package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	adminsvc "github.com/iseungsang01/tarot-manager-app/internal/service/admin"
)

// adminAuth rejects requests without a valid admin session token.
func adminAuth(svc *adminsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if _, err := svc.Validate(strings.TrimSpace(token)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}
