package trophy

import (
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
)

// streakEvaluator counts consecutive calendar days with a qualifying
// activity. The streak must still be alive: it has to end today or
// yesterday, and a gap of two or more days breaks it.
type streakEvaluator struct {
	history ActivityHistory
}

func (e *streakEvaluator) Supports(kind models.TrophyKind) bool {
	return kind == models.KindStreak
}

func (e *streakEvaluator) config(t models.Trophy) (*StreakConfig, error) {
	cfg, err := ParseConfig(t.Kind, []byte(t.CriteriaConfig))
	if err != nil {
		return nil, err
	}
	return cfg.(*StreakConfig), nil
}

func (e *streakEvaluator) CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error) {
	cfg, err := e.config(t)
	if err != nil {
		return false, err
	}
	streak, err := e.currentStreak(user.ID, cfg)
	if err != nil {
		return false, err
	}
	return streak >= cfg.ConsecutiveDays, nil
}

func (e *streakEvaluator) CalculateProgress(user models.User, t models.Trophy) (Progress, error) {
	cfg, err := e.config(t)
	if err != nil {
		return Progress{}, err
	}
	streak, err := e.currentStreak(user.ID, cfg)
	if err != nil {
		return Progress{}, err
	}
	return NewProgress(float64(streak), float64(cfg.ConsecutiveDays)), nil
}

// currentStreak walks qualifying days backward from today. Only a window
// of the configured length (plus a day of slack) is fetched; a streak
// longer than the target still reads as >= target.
func (e *streakEvaluator) currentStreak(userID string, cfg *StreakConfig) (int, error) {
	now := time.Now()
	today := startOfDay(now)
	since := today.AddDate(0, 0, -(cfg.ConsecutiveDays + 1))

	activities, err := e.history.ActivitiesSince(userID, since)
	if err != nil {
		return 0, err
	}

	// Best distance per calendar day; one qualifying activity is enough
	// to count the day.
	bestPerDay := make(map[string]float64)
	for _, a := range activities {
		key := dayKey(a.StartedAt)
		if a.DistanceMeters > bestPerDay[key] {
			bestPerDay[key] = a.DistanceMeters
		}
	}

	qualifies := func(day time.Time) bool {
		best, ok := bestPerDay[dayKey(day)]
		if !ok {
			return false
		}
		if cfg.MinimumDistancePerDay != nil && best < float64(*cfg.MinimumDistancePerDay) {
			return false
		}
		return true
	}

	// The streak may end today or yesterday; older endings are broken.
	cursor := today
	if !qualifies(cursor) {
		cursor = cursor.AddDate(0, 0, -1)
		if !qualifies(cursor) {
			return 0, nil
		}
	}

	streak := 0
	for qualifies(cursor) {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
