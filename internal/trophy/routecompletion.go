package trophy

import (
	"github.com/pushp314/runtrail-backend/internal/models"
)

// routeCompletionEvaluator covers two shapes: completing one named route
// at a minimum match percentage, or completing N distinct routes. Match
// percentages are produced upstream by the route matching collaborator.
type routeCompletionEvaluator struct {
	history ActivityHistory
}

func (e *routeCompletionEvaluator) Supports(kind models.TrophyKind) bool {
	return kind == models.KindRouteCompletion
}

func (e *routeCompletionEvaluator) config(t models.Trophy) (*RouteCompletionConfig, error) {
	cfg, err := ParseConfig(t.Kind, []byte(t.CriteriaConfig))
	if err != nil {
		return nil, err
	}
	return cfg.(*RouteCompletionConfig), nil
}

func (e *routeCompletionEvaluator) CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error) {
	cfg, err := e.config(t)
	if err != nil {
		return false, err
	}

	if cfg.RouteID != nil {
		// Fast path: the triggering activity may be the completing one
		if activity != nil && activity.MatchedRouteID != nil &&
			*activity.MatchedRouteID == *cfg.RouteID &&
			activity.RouteCompletionPercentage >= float64(cfg.MinMatchPercentage) {
			return true, nil
		}
		best, err := e.history.BestRouteCompletion(user.ID, *cfg.RouteID)
		if err != nil {
			return false, err
		}
		return best >= float64(cfg.MinMatchPercentage), nil
	}

	count, err := e.history.DistinctMatchedRouteCount(user.ID, cfg.MinMatchPercentage)
	if err != nil {
		return false, err
	}
	return count >= int64(*cfg.UniqueRoutesCount), nil
}

func (e *routeCompletionEvaluator) CalculateProgress(user models.User, t models.Trophy) (Progress, error) {
	cfg, err := e.config(t)
	if err != nil {
		return Progress{}, err
	}

	if cfg.RouteID != nil {
		best, err := e.history.BestRouteCompletion(user.ID, *cfg.RouteID)
		if err != nil {
			return Progress{}, err
		}
		return NewProgress(best, float64(cfg.MinMatchPercentage)), nil
	}

	count, err := e.history.DistinctMatchedRouteCount(user.ID, cfg.MinMatchPercentage)
	if err != nil {
		return Progress{}, err
	}
	return NewProgress(float64(count), float64(*cfg.UniqueRoutesCount)), nil
}
