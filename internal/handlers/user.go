package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pegcount/cribbage-backend/internal/middleware"
	"github.com/pegcount/cribbage-backend/internal/services"
)

type UserHandler struct {
	users services.UserStore
}

func NewUserHandler(users services.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// GetData is the authenticated smoke-test endpoint: it just greets the
// caller by name.
func (h *UserHandler) GetData(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.users.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Hello, %s! Your ID is %s", user.Username, user.ID),
	})
}

// PostData echoes an arbitrary JSON payload back to the caller.
func (h *UserHandler) PostData(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.users.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}

	var data interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid JSON payload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Data received from %s", user.Username),
		"data":    data,
	})
}

// ListUsers returns every registered user except the caller, for the
// opponent-selection dropdown. The frontend expects a bare array.
func (h *UserHandler) ListUsers(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	users, err := h.users.ListUsersExcept(userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	result := make([]gin.H, len(users))
	for i, user := range users {
		result[i] = gin.H{
			"id":       user.ID,
			"username": user.Username,
		}
	}

	c.JSON(http.StatusOK, result)
}

// Message is a trivial unauthenticated liveness endpoint.
func Message(c *gin.Context) {
	c.JSON(http.StatusOK, "message")
}
