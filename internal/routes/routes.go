package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"messaging-app-server/internal/config"
	"messaging-app-server/internal/handlers"
	"messaging-app-server/internal/middleware"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	conversationHandler := handlers.NewConversationHandler(db)
	messageHandler := handlers.NewMessageHandler(db)

	router.Use(middleware.RequestLogger(logger))

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User directory
		userRoutes := private.Group("/users")
		{
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.DELETE("/me", userHandler.DeleteAccount)
		}

		// Conversations and the messages they own
		conversationRoutes := private.Group("/conversations")
		{
			conversationRoutes.POST("", conversationHandler.CreateConversation)
			conversationRoutes.GET("", conversationHandler.GetConversations)
			conversationRoutes.GET("/:id", conversationHandler.GetConversationByID)
			conversationRoutes.POST("/:id/participants", conversationHandler.AddParticipant)
			conversationRoutes.DELETE("/:id", conversationHandler.DeleteConversation)

			conversationRoutes.POST("/:id/messages", messageHandler.SendMessage)
			conversationRoutes.GET("/:id/messages", messageHandler.GetMessages)
		}

		// Message operations
		messageRoutes := private.Group("/messages")
		{
			messageRoutes.GET("/unread", messageHandler.GetUnreadMessages)
			messageRoutes.POST("/read", messageHandler.MarkMessagesAsRead)
			messageRoutes.PUT("/:messageId", messageHandler.EditMessage)
			messageRoutes.DELETE("/:messageId", messageHandler.DeleteMessage)
			messageRoutes.GET("/:messageId/history", messageHandler.GetMessageHistory)
			messageRoutes.GET("/:messageId/thread", messageHandler.GetThread)
		}

		// Notifications
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", messageHandler.GetNotifications)
			notificationRoutes.POST("/read", messageHandler.MarkNotificationsRead)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
