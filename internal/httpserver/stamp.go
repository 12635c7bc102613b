package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	visitrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/visit"
	stampsvc "github.com/iseungsang01/tarot-manager-app/internal/service/stamp"
)

type addStampsRequest struct {
	Count int `json:"count"`
}

func addStampsHandler(svc *stampsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addStampsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count required"})
			return
		}
		result, err := svc.AddStamps(c.Request.Context(), c.Param("id"), req.Count)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func issueCouponHandler(svc *stampsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.IssueCoupon(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

type correctStampsRequest struct {
	Value *int `json:"value" binding:"required"`
}

func correctStampsHandler(svc *stampsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req correctStampsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "value required"})
			return
		}
		cust, err := svc.CorrectStamps(c.Request.Context(), c.Param("id"), *req.Value)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": cust})
	}
}

func listVisitsHandler(repo visitrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
		visits, err := repo.ListRecent(c.Request.Context(), c.Param("id"), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"visits": visits})
	}
}
