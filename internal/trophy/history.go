package trophy

import (
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
	"gorm.io/gorm"
)

// ActivityHistory is the narrow query surface the evaluators need. The
// engine never touches the data store directly beyond this interface, so
// tests can point it at an in-memory database and alternative backends
// stay possible.
type ActivityHistory interface {
	// ActivitiesSince returns the user's activities starting at or after
	// since, oldest first. A zero since means full history.
	ActivitiesSince(userID string, since time.Time) ([]models.UserActivity, error)

	// TotalDistance sums distance in meters across all of the user's activities.
	TotalDistance(userID string) (float64, error)

	// MaxActivityDistance returns the user's longest single activity in meters.
	MaxActivityDistance(userID string) (float64, error)

	// ActivityCount returns the user's lifetime activity count.
	ActivityCount(userID string) (int64, error)

	// DistinctMatchedRouteCount counts distinct routes the user has matched
	// at or above the given completion percentage.
	DistinctMatchedRouteCount(userID string, minMatchPercentage int) (int64, error)

	// BestRouteCompletion returns the user's best completion percentage on
	// one route, 0 when the route was never matched.
	BestRouteCompletion(userID, routeID string) (float64, error)

	// TrackPoints returns an activity's GPS samples ordered by sequence.
	TrackPoints(activityID string) ([]models.TrackPoint, error)
}

// gormHistory implements ActivityHistory against the service database.
type gormHistory struct {
	db *gorm.DB
}

func NewActivityHistory(db *gorm.DB) ActivityHistory {
	return &gormHistory{db: db}
}

func (h *gormHistory) ActivitiesSince(userID string, since time.Time) ([]models.UserActivity, error) {
	var activities []models.UserActivity
	q := h.db.Where("user_id = ?", userID)
	if !since.IsZero() {
		q = q.Where("started_at >= ?", since)
	}
	if err := q.Order("started_at ASC").Find(&activities).Error; err != nil {
		return nil, &HistoryError{Op: "ActivitiesSince", Err: err}
	}
	return activities, nil
}

func (h *gormHistory) TotalDistance(userID string) (float64, error) {
	var total float64
	err := h.db.Model(&models.UserActivity{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(distance_meters), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, &HistoryError{Op: "TotalDistance", Err: err}
	}
	return total, nil
}

func (h *gormHistory) MaxActivityDistance(userID string) (float64, error) {
	var max float64
	err := h.db.Model(&models.UserActivity{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(distance_meters), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, &HistoryError{Op: "MaxActivityDistance", Err: err}
	}
	return max, nil
}

func (h *gormHistory) ActivityCount(userID string) (int64, error) {
	var count int64
	err := h.db.Model(&models.UserActivity{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, &HistoryError{Op: "ActivityCount", Err: err}
	}
	return count, nil
}

func (h *gormHistory) DistinctMatchedRouteCount(userID string, minMatchPercentage int) (int64, error) {
	var count int64
	err := h.db.Model(&models.UserActivity{}).
		Where("user_id = ? AND matched_route_id IS NOT NULL AND route_completion_percentage >= ?",
			userID, minMatchPercentage).
		Distinct("matched_route_id").
		Count(&count).Error
	if err != nil {
		return 0, &HistoryError{Op: "DistinctMatchedRouteCount", Err: err}
	}
	return count, nil
}

func (h *gormHistory) BestRouteCompletion(userID, routeID string) (float64, error) {
	var best float64
	err := h.db.Model(&models.UserActivity{}).
		Where("user_id = ? AND matched_route_id = ?", userID, routeID).
		Select("COALESCE(MAX(route_completion_percentage), 0)").
		Scan(&best).Error
	if err != nil {
		return 0, &HistoryError{Op: "BestRouteCompletion", Err: err}
	}
	return best, nil
}

func (h *gormHistory) TrackPoints(activityID string) ([]models.TrackPoint, error) {
	var points []models.TrackPoint
	err := h.db.Where("activity_id = ?", activityID).
		Order("seq ASC").
		Find(&points).Error
	if err != nil {
		return nil, &HistoryError{Op: "TrackPoints", Err: err}
	}
	return points, nil
}
