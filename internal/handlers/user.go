package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
)

func GetProfile(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var activityCount int64
	database.DB.Model(&models.UserActivity{}).Where("user_id = ?", userID).Count(&activityCount)

	var trophyCount int64
	database.DB.Model(&models.UserTrophy{}).Where("user_id = ?", userID).Count(&trophyCount)

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"activityCount": activityCount,
		"trophyCount":   trophyCount,
	})
}
