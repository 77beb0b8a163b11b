package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/runtrail-backend/internal/handlers"
	"github.com/pushp314/runtrail-backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		users.GET("/profile", middleware.AuthMiddleware(), handlers.GetProfile)
	}
}
