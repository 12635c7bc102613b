package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	noticesvc "github.com/iseungsang01/tarot-manager-app/internal/service/notice"
)

func listPublicNoticesHandler(svc *noticesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		notices, err := svc.ListPublic(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notices": notices})
	}
}

func listAllNoticesHandler(svc *noticesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		notices, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notices": notices})
	}
}

func createNoticeHandler(svc *noticesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in noticesvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		notice, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"notice": notice})
	}
}

func updateNoticeHandler(svc *noticesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in noticesvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		notice, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notice": notice})
	}
}

func deleteNoticeHandler(svc *noticesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
