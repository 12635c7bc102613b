package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	couponrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/coupon"
)

func listCustomerCouponsHandler(repo couponrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons, err := repo.ListByCustomer(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupons": coupons})
	}
}

func listCouponsHandler(repo couponrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := couponrepo.ListFilter(c.DefaultQuery("filter", "all"))
		switch filter {
		case couponrepo.FilterAll, couponrepo.FilterValid, couponrepo.FilterExpired:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be all, valid, or expired"})
			return
		}

		now := time.Now()
		coupons, err := repo.List(c.Request.Context(), filter, now)
		if err != nil {
			respondError(c, err)
			return
		}

		stats := gin.H{"total": 0, "valid": 0, "expired": 0, "birthday": 0, "regular": 0}
		if filter == couponrepo.FilterAll {
			var total, valid, expired, birthday, regular int
			for _, cp := range coupons {
				total++
				if cp.ValidAt(now) {
					valid++
				}
				if cp.ValidUntil != nil && cp.ValidUntil.Before(now) {
					expired++
				}
				if cp.IsBirthday() {
					birthday++
				} else {
					regular++
				}
			}
			stats = gin.H{"total": total, "valid": valid, "expired": expired, "birthday": birthday, "regular": regular}
		}

		c.JSON(http.StatusOK, gin.H{"coupons": coupons, "stats": stats})
	}
}

type setUsedRequest struct {
	Used *bool `json:"used" binding:"required"`
}

func setCouponUsedHandler(repo couponrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setUsedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "used required"})
			return
		}
		coupon, err := repo.SetUsed(c.Request.Context(), c.Param("id"), *req.Used)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupon": coupon})
	}
}

func deleteCouponHandler(repo couponrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func deleteExpiredCouponsHandler(repo couponrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := repo.DeleteExpired(c.Request.Context(), time.Now())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
