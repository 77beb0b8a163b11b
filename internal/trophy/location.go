package trophy

import (
	"github.com/pushp314/runtrail-backend/internal/models"
)

// locationBasedEvaluator awards trophies for passing within a radius of a
// fixed point. The rule is event-driven: it only looks at the triggering
// activity's track, so a bulk recheck (nil activity) reports not
// satisfied rather than erroring. Progress is binary, there is no partial
// credit for almost reaching a landmark.
type locationBasedEvaluator struct {
	history ActivityHistory
}

func (e *locationBasedEvaluator) Supports(kind models.TrophyKind) bool {
	return kind == models.KindLocationBased
}

func (e *locationBasedEvaluator) config(t models.Trophy) (*LocationBasedConfig, error) {
	cfg, err := ParseConfig(t.Kind, []byte(t.CriteriaConfig))
	if err != nil {
		return nil, err
	}
	return cfg.(*LocationBasedConfig), nil
}

func (e *locationBasedEvaluator) CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error) {
	cfg, err := e.config(t)
	if err != nil {
		return false, err
	}
	if activity == nil {
		return false, nil
	}

	points := activity.TrackPoints
	if len(points) == 0 {
		points, err = e.history.TrackPoints(activity.ID)
		if err != nil {
			return false, err
		}
	}

	radius := float64(cfg.CollectionRadiusMeters)
	for _, p := range points {
		if haversineMeters(p.Latitude, p.Longitude, cfg.Latitude, cfg.Longitude) <= radius {
			return true, nil
		}
	}

	// Activities without a recorded track fall back to the start point
	if len(points) == 0 {
		return haversineMeters(activity.StartLatitude, activity.StartLongitude,
			cfg.Latitude, cfg.Longitude) <= radius, nil
	}

	return false, nil
}

func (e *locationBasedEvaluator) CalculateProgress(user models.User, t models.Trophy) (Progress, error) {
	if _, err := e.config(t); err != nil {
		return Progress{}, err
	}
	// Not yet awarded (the engine only asks about unearned trophies), so
	// the user has not collected the location.
	return NewProgress(0, 1), nil
}
