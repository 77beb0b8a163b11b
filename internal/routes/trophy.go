package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/runtrail-backend/internal/handlers"
	"github.com/pushp314/runtrail-backend/internal/middleware"
)

func RegisterTrophyRoutes(r gin.IRouter) {
	trophies := r.Group("/trophies")
	{
		// Public catalogue
		trophies.GET("", handlers.ListTrophies)

		// Authenticated
		trophies.GET("/mine", middleware.AuthMiddleware(), handlers.GetMyTrophies)
		trophies.GET("/:id/progress", middleware.AuthMiddleware(), handlers.GetTrophyProgress)
		trophies.POST("/recheck", middleware.AuthMiddleware(), handlers.RecheckMyTrophies)
	}

	r.GET("/leaderboard/trophies", handlers.GetTrophyLeaderboard)

	// Admin trophy management; criteria configs are validated at save time
	admin := r.Group("/admin/trophies")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.POST("", handlers.CreateTrophy)
		admin.PUT("/:id", handlers.UpdateTrophy)
		admin.DELETE("/:id", handlers.DeactivateTrophy)
	}
}
