package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/middleware"
	"github.com/mroshb/shooty_game/internal/services"
)

// ListScores returns a page of scores, or one user's scores with ?userId=.
func (h *HandlerManager) ListScores(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("userId"); raw != "" {
		userID := uint(queryInt(c, "userId", 0))
		if userID == 0 {
			badRequest(c, "invalid userId")
			return
		}
		scores, err := h.ScoreSvc.ListScoresByUser(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, scores)
		return
	}

	scores, err := h.ScoreSvc.ListScores(ctx, queryInt(c, "page", 1), queryInt(c, "pageSize", 20))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (h *HandlerManager) GetScore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	score, err := h.ScoreSvc.GetScore(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// CreateScore records a round for userId, which defaults to the caller.
func (h *HandlerManager) CreateScore(c *gin.Context) {
	var body services.ScoreInput
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	actor := middleware.ActorFrom(c)
	if body.UserID == 0 {
		body.UserID = actor.UserID
	}
	if !actor.CanAccessUser(body.UserID) {
		forbidden(c)
		return
	}

	score, err := h.ScoreSvc.CreateScore(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, score)
}

// UpdateScore corrects a score's stats. userId and moneyEarned in the body are ignored.
func (h *HandlerManager) UpdateScore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body services.ScoreInput
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	score, err := h.ScoreSvc.UpdateScore(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *HandlerManager) DeleteScore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.ScoreSvc.DeleteScore(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HandlerManager) Leaderboard(c *gin.Context) {
	entries, err := h.ScoreSvc.Leaderboard(c.Request.Context(), queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Health reports liveness and whether the database answers.
func (h *HandlerManager) Health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.DB); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
