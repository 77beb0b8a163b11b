package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/pushp314/runtrail-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB() {
	logger.Init("test")
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Route{},
		&models.UserActivity{},
		&models.TrackPoint{},
		&models.Trophy{},
		&models.UserTrophy{},
	)
}

func authedContext(w *httptest.ResponseRecorder, userID string) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	c.Set("userId", userID)
	return c, r
}

func TestCreateTrophy_RejectsInvalidConfigAtSaveTime(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	body := map[string]interface{}{
		"code": "broken",
		"name": "Broken",
		"kind": "STREAK",
		// Discriminant says EXPLORER: must be rejected now, not at evaluation
		"criteriaConfig": `{"type":"EXPLORER","uniqueAreasCount":3,"gridSizeMeters":500}`,
	}
	payload, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, "admin1")
	c.Request, _ = http.NewRequest("POST", "/api/admin/trophies", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateTrophy(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Trophy{}).Where("code = ?", "broken").Count(&count)
	assert.Equal(t, int64(0), count, "invalid trophy must not be persisted")
}

func TestCreateTrophy_AcceptsValidConfig(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	body := map[string]interface{}{
		"code":           "week_streak_test",
		"name":           "Seven Day Streak",
		"kind":           "STREAK",
		"criteriaConfig": `{"type":"STREAK","consecutiveDays":7}`,
	}
	payload, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, "admin1")
	c.Request, _ = http.NewRequest("POST", "/api/admin/trophies", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateTrophy(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved models.Trophy
	require.NoError(t, database.DB.Where("code = ?", "week_streak_test").First(&saved).Error)
	assert.Equal(t, models.KindStreak, saved.Kind)
	assert.True(t, saved.IsActive)
}

func TestCreateActivity_AwardsFirstActivityTrophy(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	user := models.User{ID: "runner_h1", Username: "runner_h1", Email: "runner_h1@example.com"}
	require.NoError(t, database.DB.Create(&user).Error)

	trophy := models.Trophy{
		ID:             "trophy-first",
		Code:           "first_steps_h",
		Name:           "First Steps",
		Kind:           models.KindSpecial,
		IsActive:       true,
		CriteriaConfig: `{"type":"SPECIAL","specialType":"FIRST_ACTIVITY"}`,
	}
	require.NoError(t, database.DB.Create(&trophy).Error)

	started := time.Now().Add(-30 * time.Minute)
	body := map[string]interface{}{
		"startedAt":       started.Format(time.RFC3339),
		"endedAt":         started.Add(25 * time.Minute).Format(time.RFC3339),
		"durationSeconds": 1500,
		"distanceMeters":  5200,
	}
	payload, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, user.ID)
	c.Request, _ = http.NewRequest("POST", "/api/activities", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateActivity(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		NewAwards []struct {
			TrophyCode string `json:"trophyCode"`
			Status     string `json:"status"`
		} `json:"newAwards"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.NewAwards, 1)
	assert.Equal(t, "first_steps_h", response.NewAwards[0].TrophyCode)
	assert.Equal(t, "AWARDED", response.NewAwards[0].Status)

	var count int64
	database.DB.Model(&models.UserTrophy{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetTrophyProgress(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	user := models.User{ID: "runner_h2", Username: "runner_h2", Email: "runner_h2@example.com"}
	require.NoError(t, database.DB.Create(&user).Error)

	trophy := models.Trophy{
		ID:             "trophy-prog",
		Code:           "50k_total_h",
		Name:           "50K Total",
		Kind:           models.KindDistanceMilestone,
		IsActive:       true,
		CriteriaConfig: `{"type":"DISTANCE_MILESTONE","distanceMeters":50000,"scope":"TOTAL"}`,
	}
	require.NoError(t, database.DB.Create(&trophy).Error)

	activity := models.UserActivity{
		UserID:          user.ID,
		StartedAt:       time.Now().Add(-time.Hour),
		EndedAt:         time.Now(),
		DurationSeconds: 3600,
		DistanceMeters:  10000,
	}
	require.NoError(t, database.DB.Create(&activity).Error)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, user.ID)
	c.Request, _ = http.NewRequest("GET", "/api/trophies/trophy-prog/progress", nil)
	c.Params = gin.Params{{Key: "id", Value: "trophy-prog"}}

	GetTrophyProgress(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Progress struct {
			CurrentValue float64 `json:"currentValue"`
			TargetValue  float64 `json:"targetValue"`
			Percentage   int     `json:"percentage"`
			IsComplete   bool    `json:"isComplete"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(10000), response.Progress.CurrentValue)
	assert.Equal(t, 20, response.Progress.Percentage)
	assert.False(t, response.Progress.IsComplete)
}
