package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pegcount/cribbage-backend/internal/middleware"
	"github.com/pegcount/cribbage-backend/internal/scores"
	"github.com/pegcount/cribbage-backend/internal/services"
	"github.com/pegcount/cribbage-backend/internal/stats"
)

type ScoreHandler struct {
	store services.Store
}

func NewScoreHandler(store services.Store) *ScoreHandler {
	return &ScoreHandler{store: store}
}

// LogScore validates a finished-game submission and persists it. The
// recorder on the stored record is the authenticated caller; a user_id in
// the payload is ignored.
func (h *ScoreHandler) LogScore(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	game, err := scores.Validate(payload, userID, h.store)
	if err != nil {
		if scores.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.store.SaveGame(game); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Cribbage game logged successfully!",
		"game_id":        game.ID,
		"user_id":        game.RecorderID,
		"user_score":     game.RecorderScore,
		"opponent_score": game.OpponentScore,
	})
}

// DashboardStats returns the viewer's aggregated results and recent games.
func (h *ScoreHandler) DashboardStats(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.store.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	games, err := h.store.ListGamesForUser(userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats.Summarize(userID, user.Username, games))
}
