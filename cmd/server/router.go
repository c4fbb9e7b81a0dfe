package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/pegcount/cribbage-backend/internal/handlers"
	"github.com/pegcount/cribbage-backend/internal/middleware"
	"github.com/pegcount/cribbage-backend/pkg/auth"
)

func APIEndpoints(r *gin.Engine, authH *handlers.AuthHandler, userH *handlers.UserHandler, scoreH *handlers.ScoreHandler, jwtMgr *auth.JWTManager, rdb *redis.Client) {
	// Public endpoints
	r.POST("/login", authH.Login)
	r.POST("/register", authH.Register)
	r.GET("/message", handlers.Message)

	// Everything else requires a bearer token
	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/data", userH.GetData)
		api.POST("/data", userH.PostData)
		api.GET("/users", userH.ListUsers)
		api.POST("/score", scoreH.LogScore)
		api.GET("/dashboard-stats", scoreH.DashboardStats)
		api.POST("/logout", authH.Logout)
	}
}
