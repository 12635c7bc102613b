package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminsvc "github.com/iseungsang01/tarot-manager-app/internal/service/admin"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func adminLoginHandler(svc *adminsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
			return
		}
		token, err := svc.Login(req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresIn": svc.TokenTTLSeconds(),
		})
	}
}
