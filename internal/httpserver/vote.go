package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	votesvc "github.com/iseungsang01/tarot-manager-app/internal/service/vote"
)

func listActiveVotesHandler(svc *votesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		votes, err := svc.ListActive(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"votes": votes})
	}
}

func listAllVotesHandler(svc *votesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		votes, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"votes": votes})
	}
}

func createVoteHandler(svc *votesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in votesvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		vote, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"vote": vote})
	}
}

func updateVoteHandler(svc *votesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in votesvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		vote, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vote": vote})
	}
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func setVoteActiveHandler(svc *votesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "active required"})
			return
		}
		vote, err := svc.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vote": vote})
	}
}

func deleteVoteHandler(svc *votesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type castBallotRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	OptionIDs   []int  `json:"optionIds" binding:"required"`
}

func castBallotHandler(svc *votesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req castBallotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phoneNumber and optionIds required"})
			return
		}
		if err := svc.Cast(c.Request.Context(), c.Param("id"), req.PhoneNumber, req.OptionIDs); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
	}
}

func voteResultsHandler(svc *votesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := svc.Results(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}
