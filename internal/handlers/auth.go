package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pegcount/cribbage-backend/internal/handlers/dto"
	"github.com/pegcount/cribbage-backend/internal/models"
	"github.com/pegcount/cribbage-backend/internal/services"
	"github.com/pegcount/cribbage-backend/pkg/auth"
)

type AuthHandler struct {
	users      services.UserStore
	jwtManager *auth.JWTManager
	redis      *redis.Client
}

func NewAuthHandler(users services.UserStore, jwtMgr *auth.JWTManager, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{users: users, jwtManager: jwtMgr, redis: rdb}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing username or password"})
		return
	}

	if _, err := h.users.FindUserByUsername(req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"msg": "Username already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occurred during registration"})
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.users.SaveUser(user); err != nil {
		// The unique index catches registrations that raced past the
		// pre-check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"msg": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occurred during registration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "User created successfully"})
}

// Login checks the credentials and issues a bearer token whose subject is
// the user's ID.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Bad username or password"})
		return
	}

	user, err := h.users.FindUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Bad username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Bad username or password"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Login successful", "access_token": token})
}

// Logout blacklists the presented token in redis until it expires. Without
// redis configured tokens simply run out on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
		return
	}

	if h.redis != nil {
		ttl := time.Until(exp)
		h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl)
	}

	c.Status(http.StatusOK)
}
