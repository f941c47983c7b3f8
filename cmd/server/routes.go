package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Erik-List/ranked-capital/internal/interfaces/http/handlers"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	ratingHandler      *handlers.RatingHandler
	leaderboardHandler *handlers.LeaderboardHandler
	investorHandler    *handlers.InvestorHandler
	adminHandler       *handlers.AdminHandler
	authMiddleware     gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.GET("/linkedin", d.authHandler.LinkedInLogin)
			auth.GET("/linkedin/callback", d.authHandler.LinkedInCallback)
			auth.POST("/admin/login", d.authHandler.AdminLogin)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
		}

		// Public read model: ranking, profiles, search and the activity feed
		v1.GET("/leaderboard", d.leaderboardHandler.GetLeaderboard)
		v1.GET("/leaderboard/filters", d.leaderboardHandler.GetLeaderboardFilters)
		v1.GET("/investors/search", d.investorHandler.SearchInvestors)
		v1.GET("/investors/:slug", d.leaderboardHandler.GetInvestorProfile)
		v1.GET("/logs", d.leaderboardHandler.GetActivityFeed)
		v1.GET("/logs/filters", d.leaderboardHandler.GetFeedFilters)

		// Rating routes (founders)
		ratings := v1.Group("/ratings")
		ratings.Use(d.authMiddleware)
		{
			ratings.POST("", middleware.IdempotencyMiddleware(), d.ratingHandler.SubmitRating)
			ratings.GET("/mine", d.ratingHandler.GetMyRatings)
			ratings.DELETE("/:id", d.ratingHandler.RetractRating)
		}

		// Admin routes (moderation and investor management)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.POST("/investors", d.adminHandler.CreateInvestor)
			admin.GET("/investors", d.adminHandler.ListInvestors)
			admin.PUT("/investors/:id", d.adminHandler.UpdateInvestor)
			admin.PUT("/investors/:id/status", d.adminHandler.UpdateInvestorStatus)

			admin.GET("/ratings", d.adminHandler.ListRatings)
			admin.PUT("/ratings/:id/status", d.adminHandler.UpdateRatingStatus)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "ranked-capital-backend",
			"version": "0.2.0",
		})
	})
}
