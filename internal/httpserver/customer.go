package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	customersvc "github.com/iseungsang01/tarot-manager-app/internal/service/customer"
)

type lookupRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Nickname    string `json:"nickname"`
	Birthday    string `json:"birthday"` // YYYY-MM-DD
}

func lookupCustomerHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lookupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phoneNumber required"})
			return
		}

		var birthday *time.Time
		if req.Birthday != "" {
			d, err := time.Parse("2006-01-02", req.Birthday)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "birthday must be YYYY-MM-DD"})
				return
			}
			birthday = &d
		}

		result, err := svc.LookupOrRegister(c.Request.Context(), customersvc.LookupInput{
			PhoneNumber: req.PhoneNumber,
			Nickname:    req.Nickname,
			Birthday:    birthday,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		status := http.StatusOK
		if result.Registered {
			status = http.StatusCreated
		}
		c.JSON(status, result)
	}
}

func getCustomerHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cust, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": cust})
	}
}

func listCustomersHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		roster, err := svc.ListRoster(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, roster)
	}
}

func deleteCustomerHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func resetCustomersHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != "all" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pass confirm=all to wipe every customer"})
			return
		}
		deleted, err := svc.ResetAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
