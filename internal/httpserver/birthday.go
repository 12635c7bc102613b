package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	birthdaysvc "github.com/iseungsang01/tarot-manager-app/internal/service/birthday"
)

func listBirthdaysHandler(svc *birthdaysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		upcoming, err := svc.ListUpcoming(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, upcoming)
	}
}

func grantBirthdayCouponHandler(svc *birthdaysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupon, err := svc.Grant(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
	}
}
