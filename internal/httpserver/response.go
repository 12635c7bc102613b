package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
)

// respondError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a backing-store failure and surfaces as retryable 503.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrCardFull):
		c.JSON(http.StatusConflict, gin.H{"error": "stamp card is full; redeem the coupon first"})
	case errors.Is(err, domain.ErrNotEligible):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyGranted):
		c.JSON(http.StatusConflict, gin.H{"error": "birthday coupon already granted this year"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "concurrent update, please retry"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	}
}
