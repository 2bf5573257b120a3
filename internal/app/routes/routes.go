package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunm/placementpulse/internal/app/controllers"
	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	experienceController *controllers.ExperienceController,
	adminController *controllers.AdminController,
	commentController *controllers.CommentController,
	chatController *controllers.ChatController,
	companyController *controllers.CompanyController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Authenticated auth routes
	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.JWTAuth())
	{
		authProtected.POST("/logout", authController.Logout)
		authProtected.POST("/change-password", authController.ChangePassword)
		authProtected.GET("/me", authController.GetMe)
		authProtected.PUT("/me", authController.UpdateMe)
	}

	// --- Companies (public) ---
	companies := api.Group("/companies")
	{
		companies.GET("", companyController.List)
		companies.GET("/:slug", companyController.GetBySlug)
	}

	// --- Experiences ---
	experiences := api.Group("/experiences")
	experiences.Use(authMiddleware.OptionalAuth())
	{
		experiences.GET("", experienceController.List)
		experiences.GET("/:id", experienceController.Get)
		experiences.GET("/:id/comments", commentController.List)
	}

	experiencesProtected := api.Group("/experiences")
	experiencesProtected.Use(authMiddleware.JWTAuth(), authMiddleware.ActiveUserRequired())
	{
		experiencesProtected.POST("", experienceController.Create)
		experiencesProtected.GET("/mine", experienceController.ListMine)
		experiencesProtected.PUT("/:id", experienceController.Update)
		experiencesProtected.DELETE("/:id", experienceController.Delete)
		experiencesProtected.POST("/:id/like", experienceController.ToggleLike)
		experiencesProtected.POST("/:id/bookmark", experienceController.ToggleBookmark)
		experiencesProtected.POST("/:id/comments", commentController.Create)
	}

	// --- Comments ---
	comments := api.Group("/comments")
	comments.Use(authMiddleware.JWTAuth(), authMiddleware.ActiveUserRequired())
	{
		comments.DELETE("/:id", commentController.Delete)
	}

	// --- Chat ---
	chats := api.Group("/chats")
	chats.Use(authMiddleware.JWTAuth(), authMiddleware.ActiveUserRequired())
	{
		chats.POST("/start", chatController.Start)
		chats.GET("", chatController.List)
		chats.GET("/:id/messages", chatController.Messages)
		chats.POST("/:id/messages", chatController.Send)
		chats.PUT("/:id/read", chatController.MarkRead)
	}

	// --- Users ---
	users := api.Group("/users")
	users.Use(authMiddleware.JWTAuth())
	{
		users.GET("/:id", userController.Get)
	}

	// --- Admin ---
	admin := api.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.GET("/dashboard", adminController.Dashboard)
		admin.GET("/experiences", adminController.ListExperiences)
		admin.GET("/experiences/:id", adminController.GetExperience)
		admin.PUT("/experiences/:id/approve", adminController.Approve)
		admin.PUT("/experiences/:id/reject", adminController.Reject)
		admin.DELETE("/experiences/:id", adminController.DeleteExperience)
		admin.GET("/users", adminController.ListUsers)
		admin.PUT("/users/:id/toggle-status", adminController.ToggleUserStatus)
	}
}
