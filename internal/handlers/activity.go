package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/pushp314/runtrail-backend/internal/services"
)

type TrackPointInput struct {
	Latitude   float64 `json:"latitude" binding:"required"`
	Longitude  float64 `json:"longitude" binding:"required"`
	TimeOffset int     `json:"timeOffset"`
}

type CreateActivityRequest struct {
	StartedAt       time.Time `json:"startedAt" binding:"required"`
	EndedAt         time.Time `json:"endedAt" binding:"required"`
	DurationSeconds int       `json:"durationSeconds" binding:"required,min=1"`
	DistanceMeters  float64   `json:"distanceMeters" binding:"required,min=1"`

	// Populated upstream by the route matching collaborator
	MatchedRouteID            *string `json:"matchedRouteId"`
	Direction                 string  `json:"direction"`
	RouteCompletionPercentage float64 `json:"routeCompletionPercentage"`
	CompletedFullRoute        bool    `json:"completedFullRoute"`

	StartLatitude  float64           `json:"startLatitude"`
	StartLongitude float64           `json:"startLongitude"`
	TrackPoints    []TrackPointInput `json:"trackPoints"`
}

// CreateActivity ingests a completed run and returns any trophies it earned
func CreateActivity(c *gin.Context) {
	userID := c.GetString("userId")

	// Throttle ingestion per user; imports can be bursty
	allowed, err := database.CheckRateLimit("ingest:"+userID, 60, time.Minute)
	if err == nil && !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many activities, slow down"})
		return
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.EndedAt.Before(req.StartedAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endedAt must not be before startedAt"})
		return
	}

	direction := models.DirectionUnknown
	switch models.Direction(req.Direction) {
	case models.DirectionClockwise, models.DirectionCounterClockwise:
		direction = models.Direction(req.Direction)
	}

	if req.MatchedRouteID != nil {
		var route models.Route
		if err := database.DB.First(&route, "id = ?", *req.MatchedRouteID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown matched route"})
			return
		}
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	activity := models.UserActivity{
		MatchedRouteID:            req.MatchedRouteID,
		Direction:                 direction,
		StartedAt:                 req.StartedAt,
		EndedAt:                   req.EndedAt,
		DurationSeconds:           req.DurationSeconds,
		DistanceMeters:            req.DistanceMeters,
		RouteCompletionPercentage: req.RouteCompletionPercentage,
		CompletedFullRoute:        req.CompletedFullRoute,
		StartLatitude:             req.StartLatitude,
		StartLongitude:            req.StartLongitude,
	}
	for i, p := range req.TrackPoints {
		activity.TrackPoints = append(activity.TrackPoints, models.TrackPoint{
			Seq:        i,
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			TimeOffset: p.TimeOffset,
		})
	}

	outcomes, err := services.IngestActivity(user, &activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save activity"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"activity":  activity,
		"newAwards": services.NewlyAwarded(outcomes),
	})
}

// ListMyActivities returns the caller's activity history, newest first
func ListMyActivities(c *gin.Context) {
	userID := c.GetString("userId")

	var activities []models.UserActivity
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(100).
		Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
