package trophy

import (
	"github.com/pushp314/runtrail-backend/internal/models"
)

// distanceMilestoneEvaluator handles cumulative and single-run distance
// thresholds.
type distanceMilestoneEvaluator struct {
	history ActivityHistory
}

func (e *distanceMilestoneEvaluator) Supports(kind models.TrophyKind) bool {
	return kind == models.KindDistanceMilestone
}

func (e *distanceMilestoneEvaluator) config(t models.Trophy) (*DistanceMilestoneConfig, error) {
	cfg, err := ParseConfig(t.Kind, []byte(t.CriteriaConfig))
	if err != nil {
		return nil, err
	}
	return cfg.(*DistanceMilestoneConfig), nil
}

func (e *distanceMilestoneEvaluator) CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error) {
	cfg, err := e.config(t)
	if err != nil {
		return false, err
	}

	switch cfg.Scope {
	case ScopeSingleActivity:
		if activity != nil && activity.DistanceMeters >= float64(cfg.DistanceMeters) {
			return true, nil
		}
		// Bulk recheck path: any past activity may already satisfy it
		best, err := e.history.MaxActivityDistance(user.ID)
		if err != nil {
			return false, err
		}
		return best >= float64(cfg.DistanceMeters), nil
	default: // ScopeTotal
		total, err := e.history.TotalDistance(user.ID)
		if err != nil {
			return false, err
		}
		return total >= float64(cfg.DistanceMeters), nil
	}
}

func (e *distanceMilestoneEvaluator) CalculateProgress(user models.User, t models.Trophy) (Progress, error) {
	cfg, err := e.config(t)
	if err != nil {
		return Progress{}, err
	}

	var current float64
	if cfg.Scope == ScopeSingleActivity {
		current, err = e.history.MaxActivityDistance(user.ID)
	} else {
		current, err = e.history.TotalDistance(user.ID)
	}
	if err != nil {
		return Progress{}, err
	}

	return NewProgress(current, float64(cfg.DistanceMeters)), nil
}
