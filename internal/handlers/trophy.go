package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/pushp314/runtrail-backend/internal/services"
	"github.com/pushp314/runtrail-backend/internal/trophy"
	"github.com/pushp314/runtrail-backend/pkg/utils"
	"gorm.io/gorm"
)

// ListTrophies returns all active trophy definitions for display
func ListTrophies(c *gin.Context) {
	var trophies []models.Trophy
	if err := database.DB.
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&trophies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trophies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trophies": trophies})
}

// GetMyTrophies returns the caller's earned trophies
func GetMyTrophies(c *gin.Context) {
	userID := c.GetString("userId")

	var awards []models.UserTrophy
	if err := database.DB.
		Preload("Trophy").
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&awards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trophies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trophies": awards})
}

// GetTrophyProgress returns on-demand progress toward one trophy
func GetTrophyProgress(c *gin.Context) {
	userID := c.GetString("userId")
	trophyID := c.Param("id")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	engine := trophy.NewEngine(database.DB)
	progress, err := engine.ProgressFor(user, trophyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trophy not found"})
			return
		}
		var unsupported *trophy.UnsupportedKindError
		if errors.As(err, &unsupported) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Trophy is misconfigured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// RecheckMyTrophies runs the bulk evaluation path for the caller,
// awarding anything already satisfied by past activities
func RecheckMyTrophies(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	engine := trophy.NewEngine(database.DB)
	outcomes, err := engine.RecheckUser(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate trophies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"newAwards": services.NewlyAwarded(outcomes)})
}

// GetTrophyLeaderboard ranks users by trophy count
func GetTrophyLeaderboard(c *gin.Context) {
	entries, err := services.GetTrophyLeaderboard(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

type TrophyRequest struct {
	Code           string `json:"code" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	Kind           string `json:"kind" binding:"required"`
	Category       int    `json:"category"`
	IsActive       *bool  `json:"isActive"`
	DisplayOrder   int    `json:"displayOrder"`
	CriteriaConfig string `json:"criteriaConfig" binding:"required"`
}

// validateTrophyRequest parses the criteria config so invalid
// configuration is rejected at save time, never discovered at evaluation
func validateTrophyRequest(req *TrophyRequest) error {
	kind := models.TrophyKind(req.Kind)
	_, err := trophy.ParseConfig(kind, []byte(req.CriteriaConfig))
	return err
}

// CreateTrophy creates a trophy definition (admin)
func CreateTrophy(c *gin.Context) {
	var req TrophyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateTrophyRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	t := models.Trophy{
		ID:             utils.NewID(),
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Kind:           models.TrophyKind(req.Kind),
		Category:       req.Category,
		IsActive:       isActive,
		DisplayOrder:   req.DisplayOrder,
		CriteriaConfig: req.CriteriaConfig,
	}

	if err := database.DB.Create(&t).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Trophy code already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trophy": t})
}

// UpdateTrophy updates a trophy definition (admin)
func UpdateTrophy(c *gin.Context) {
	var t models.Trophy
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trophy not found"})
		return
	}

	var req TrophyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateTrophyRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t.Code = req.Code
	t.Name = req.Name
	t.Description = req.Description
	t.Kind = models.TrophyKind(req.Kind)
	t.Category = req.Category
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	t.DisplayOrder = req.DisplayOrder
	t.CriteriaConfig = req.CriteriaConfig

	if err := database.DB.Save(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trophy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trophy": t})
}

// DeactivateTrophy disables a trophy without touching award history (admin)
func DeactivateTrophy(c *gin.Context) {
	var t models.Trophy
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trophy not found"})
		return
	}

	t.IsActive = false
	if err := database.DB.Save(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate trophy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trophy": t})
}
