package trophy

import (
	"fmt"
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
)

// specialEvaluator dispatches on the config's specialType. Each sub-rule
// is narrow and independent; an unknown specialType is an evaluation
// error for this trophy only and never blocks the user's other trophies.
type specialEvaluator struct {
	history ActivityHistory
}

func (e *specialEvaluator) Supports(kind models.TrophyKind) bool {
	return kind == models.KindSpecial
}

func (e *specialEvaluator) config(t models.Trophy) (*SpecialConfig, error) {
	cfg, err := ParseConfig(t.Kind, []byte(t.CriteriaConfig))
	if err != nil {
		return nil, err
	}
	return cfg.(*SpecialConfig), nil
}

func (e *specialEvaluator) CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error) {
	cfg, err := e.config(t)
	if err != nil {
		return false, err
	}

	switch cfg.SpecialType {
	case SpecialFirstActivity:
		if activity == nil {
			return false, nil
		}
		count, err := e.history.ActivityCount(user.ID)
		if err != nil {
			return false, err
		}
		return count == 1, nil

	case SpecialBirthdayRun:
		if activity == nil || user.DateOfBirth == nil {
			return false, nil
		}
		dob := *user.DateOfBirth
		return activity.StartedAt.Month() == dob.Month() &&
			activity.StartedAt.Day() == dob.Day(), nil

	case SpecialDateBased:
		if activity == nil {
			return false, nil
		}
		return int(activity.StartedAt.Month()) == *cfg.Month &&
			activity.StartedAt.Day() == *cfg.Day, nil

	case SpecialPerformance:
		if activity != nil && meetsPerformance(*activity, cfg) {
			return true, nil
		}
		// Bulk recheck: any past activity may qualify
		activities, err := e.history.ActivitiesSince(user.ID, time.Time{})
		if err != nil {
			return false, err
		}
		for _, a := range activities {
			if meetsPerformance(a, cfg) {
				return true, nil
			}
		}
		return false, nil

	default:
		return false, fmt.Errorf("unknown specialType %q", cfg.SpecialType)
	}
}

func (e *specialEvaluator) CalculateProgress(user models.User, t models.Trophy) (Progress, error) {
	cfg, err := e.config(t)
	if err != nil {
		return Progress{}, err
	}

	switch cfg.SpecialType {
	case SpecialFirstActivity:
		count, err := e.history.ActivityCount(user.ID)
		if err != nil {
			return Progress{}, err
		}
		if count > 0 {
			count = 1
		}
		return NewProgress(float64(count), 1), nil

	case SpecialBirthdayRun:
		if user.DateOfBirth == nil {
			return NewProgress(0, 1), nil
		}
		dob := *user.DateOfBirth
		met, err := e.anyActivityOn(user.ID, dob.Month(), dob.Day())
		if err != nil {
			return Progress{}, err
		}
		return binaryProgress(met), nil

	case SpecialDateBased:
		met, err := e.anyActivityOn(user.ID, time.Month(*cfg.Month), *cfg.Day)
		if err != nil {
			return Progress{}, err
		}
		return binaryProgress(met), nil

	case SpecialPerformance:
		activities, err := e.history.ActivitiesSince(user.ID, time.Time{})
		if err != nil {
			return Progress{}, err
		}
		for _, a := range activities {
			if meetsPerformance(a, cfg) {
				return NewProgress(1, 1), nil
			}
		}
		return NewProgress(0, 1), nil

	default:
		return Progress{}, fmt.Errorf("unknown specialType %q", cfg.SpecialType)
	}
}

func (e *specialEvaluator) anyActivityOn(userID string, month time.Month, day int) (bool, error) {
	activities, err := e.history.ActivitiesSince(userID, time.Time{})
	if err != nil {
		return false, err
	}
	for _, a := range activities {
		if a.StartedAt.Month() == month && a.StartedAt.Day() == day {
			return true, nil
		}
	}
	return false, nil
}

func meetsPerformance(a models.UserActivity, cfg *SpecialConfig) bool {
	return a.DistanceMeters >= float64(*cfg.DistanceMeters) &&
		a.DurationSeconds <= *cfg.MaxDurationSeconds
}

func binaryProgress(met bool) Progress {
	if met {
		return NewProgress(1, 1)
	}
	return NewProgress(0, 1)
}
