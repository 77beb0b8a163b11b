package trophy

import (
	"fmt"
	"testing"
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/pushp314/runtrail-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB initializes an in-memory SQLite DB, one per test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Init("test")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// SQLite handles concurrent writers poorly; a single connection keeps
	// the duplicate-insert tests deterministic
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Route{},
		&models.UserActivity{},
		&models.TrackPoint{},
		&models.Trophy{},
		&models.UserTrophy{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{
		ID:       id,
		Name:     id,
		Username: id,
		Email:    id + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

type activityOpt func(*models.UserActivity)

func withDistance(meters float64) activityOpt {
	return func(a *models.UserActivity) { a.DistanceMeters = meters }
}

func withRoute(routeID string, completionPct float64) activityOpt {
	return func(a *models.UserActivity) {
		a.MatchedRouteID = &routeID
		a.RouteCompletionPercentage = completionPct
	}
}

func withStart(lat, lng float64) activityOpt {
	return func(a *models.UserActivity) {
		a.StartLatitude = lat
		a.StartLongitude = lng
	}
}

func withDuration(seconds int) activityOpt {
	return func(a *models.UserActivity) { a.DurationSeconds = seconds }
}

func seedActivity(t *testing.T, db *gorm.DB, userID string, startedAt time.Time, opts ...activityOpt) models.UserActivity {
	t.Helper()
	activity := models.UserActivity{
		UserID:          userID,
		StartedAt:       startedAt,
		EndedAt:         startedAt.Add(30 * time.Minute),
		DurationSeconds: 1800,
		DistanceMeters:  5000,
		Direction:       models.DirectionUnknown,
	}
	for _, opt := range opts {
		opt(&activity)
	}
	require.NoError(t, db.Create(&activity).Error)
	return activity
}

func makeTrophy(kind models.TrophyKind, code, criteriaConfig string) models.Trophy {
	return models.Trophy{
		ID:             "trophy-" + code,
		Code:           code,
		Name:           code,
		Kind:           kind,
		IsActive:       true,
		CriteriaConfig: criteriaConfig,
	}
}
