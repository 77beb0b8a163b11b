package trophy

import (
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
)

// timeBasedEvaluator counts activities whose local start hour falls in
// [startHour, endHour), optionally restricted to weekdays and a minimum
// distance.
type timeBasedEvaluator struct {
	history ActivityHistory
}

func (e *timeBasedEvaluator) Supports(kind models.TrophyKind) bool {
	return kind == models.KindTimeBased
}

func (e *timeBasedEvaluator) config(t models.Trophy) (*TimeBasedConfig, error) {
	cfg, err := ParseConfig(t.Kind, []byte(t.CriteriaConfig))
	if err != nil {
		return nil, err
	}
	return cfg.(*TimeBasedConfig), nil
}

func (e *timeBasedEvaluator) CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error) {
	cfg, err := e.config(t)
	if err != nil {
		return false, err
	}
	count, err := e.matchingCount(user.ID, cfg)
	if err != nil {
		return false, err
	}
	return count >= cfg.RequiredCount, nil
}

func (e *timeBasedEvaluator) CalculateProgress(user models.User, t models.Trophy) (Progress, error) {
	cfg, err := e.config(t)
	if err != nil {
		return Progress{}, err
	}
	count, err := e.matchingCount(user.ID, cfg)
	if err != nil {
		return Progress{}, err
	}
	return NewProgress(float64(count), float64(cfg.RequiredCount)), nil
}

func (e *timeBasedEvaluator) matchingCount(userID string, cfg *TimeBasedConfig) (int, error) {
	activities, err := e.history.ActivitiesSince(userID, time.Time{})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, a := range activities {
		if !matchesTimeWindow(a, cfg) {
			continue
		}
		count++
	}
	return count, nil
}

func matchesTimeWindow(a models.UserActivity, cfg *TimeBasedConfig) bool {
	hour := a.StartedAt.Hour()
	if hour < cfg.StartHour || hour >= cfg.EndHour {
		return false
	}
	if cfg.MinimumDistance != nil && a.DistanceMeters < float64(*cfg.MinimumDistance) {
		return false
	}
	if len(cfg.DaysOfWeek) > 0 {
		iso := isoWeekday(a.StartedAt)
		found := false
		for _, d := range cfg.DaysOfWeek {
			if d == iso {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// isoWeekday maps time.Weekday to ISO numbering (1=Monday .. 7=Sunday).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
