package main

import (
	"hackmate-backend/config"
	"hackmate-backend/database"
	"hackmate-backend/handlers"
	"hackmate-backend/middleware"
	"log"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public, tight rate limit)
	// ==========================================
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/verify-email", handlers.VerifyEmail)
		auth.POST("/forgot-password", handlers.ForgotPassword)
		auth.POST("/reset-password", handlers.ResetPassword)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// Account
		api.POST("/auth/change-password", handlers.ChangePassword)

		// Users
		api.GET("/users/me", handlers.GetProfile)
		api.PUT("/users/me", handlers.UpdateProfile)
		api.PUT("/users/me/fcm-token", handlers.UpdateFCMToken)
		api.GET("/users/discover", handlers.DiscoverUsers)
		api.GET("/users/:username", handlers.GetUserByUsername)

		// Invitations
		api.GET("/invitations", handlers.GetInvitations)
		api.POST("/invitations", middleware.WriteRateLimit(), handlers.CreateInvitation)
		api.PATCH("/invitations/:id", handlers.RespondToInvitation)

		// Matches
		api.GET("/matches", handlers.GetMatches)

		// Messages
		api.GET("/messages", handlers.GetConversations)
		api.GET("/messages/:conversationId", handlers.GetMessages)
		api.POST("/messages/:conversationId", middleware.WriteRateLimit(), handlers.SendMessage)
		api.PATCH("/messages/:conversationId", handlers.MarkConversationRead)

		// Hackathons
		api.GET("/hackathons", handlers.GetHackathons)
		api.POST("/hackathons", middleware.WriteRateLimit(), handlers.CreateHackathon)
		api.GET("/hackathons/history", handlers.GetHackathonHistory)
		api.POST("/hackathons/history", handlers.AddHackathonHistory)

		// Projects
		api.GET("/projects", handlers.GetProjects)
		api.POST("/projects", middleware.WriteRateLimit(), handlers.CreateProject)
		api.PUT("/projects/:id", handlers.UpdateProject)
		api.DELETE("/projects/:id", handlers.DeleteProject)
	}

	// Start server
	port := config.AppConfig.Port
	log.Printf("🚀 %s server starting on port %s", config.AppConfig.AppName, port)

	addr := "0.0.0.0:" + port
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
