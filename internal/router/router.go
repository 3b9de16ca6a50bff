package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitbite/fitbite-backend/internal/api"
	"github.com/fitbite/fitbite-backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	goalHandler *api.GoalHandler,
	foodHandler *api.FoodHandler,
	profileHandler *api.ProfileHandler,
	validator middleware.TokenValidator,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		protected.GET("/profile", profileHandler.Get)

		goals := protected.Group("/goals")
		{
			goals.POST("", goalHandler.Create)
			goals.GET("", goalHandler.List)
			goals.GET("/:id", goalHandler.Get)
			goals.PUT("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
		}

		food := protected.Group("/food")
		{
			food.POST("", foodHandler.Add)
			food.GET("/today", foodHandler.Today)
			food.GET("/history", foodHandler.History)
			food.GET("/remaining", foodHandler.Remaining)
			food.GET("/suggestion", foodHandler.Suggestion)
			food.DELETE("/:id", foodHandler.Delete)
		}
	}

	return router
}
