package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/runtrail-backend/internal/handlers"
	"github.com/pushp314/runtrail-backend/internal/middleware"
)

func RegisterActivityRoutes(r gin.IRouter) {
	activities := r.Group("/activities")
	activities.Use(middleware.AuthMiddleware())
	{
		activities.POST("", handlers.CreateActivity)
		activities.GET("", handlers.ListMyActivities)
	}
}
