package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	suggestionsvc "github.com/iseungsang01/tarot-manager-app/internal/service/suggestion"
)

func submitSuggestionHandler(svc *suggestionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in suggestionsvc.SubmitInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		s, err := svc.Submit(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"suggestion": s})
	}
}

func listSuggestionsHandler(svc *suggestionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		suggestions, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
	}
}

type respondRequest struct {
	Response string `json:"response" binding:"required"`
}

func respondSuggestionHandler(svc *suggestionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req respondRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "response required"})
			return
		}
		s, err := svc.Respond(c.Request.Context(), c.Param("id"), req.Response)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestion": s})
	}
}

func deleteSuggestionHandler(svc *suggestionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
