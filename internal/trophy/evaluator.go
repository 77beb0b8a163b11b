package trophy

import (
	"github.com/pushp314/runtrail-backend/internal/models"
)

// Evaluator decides whether a trophy's criteria are met and how far along
// a user is. One evaluator exists per trophy kind.
//
// CheckCriteria receives the triggering activity when called from
// activity ingestion and nil during bulk rechecks; inherently
// event-driven evaluators (location-based, most special rules) report
// "not satisfied" for a nil activity instead of erroring.
//
// CalculateProgress never needs a specific activity and backs the UI's
// "X/Y" displays.
type Evaluator interface {
	Supports(kind models.TrophyKind) bool
	CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error)
	CalculateProgress(user models.User, t models.Trophy) (Progress, error)
}

// Registry maps trophy kinds to evaluators. Resolving a kind nobody
// supports is an explicit UnsupportedKindError so misconfigured trophies
// show up in logs instead of silently never being awarded.
type Registry struct {
	evaluators []Evaluator
}

// NewRegistry wires up one evaluator per supported kind, all sharing the
// given history provider.
func NewRegistry(history ActivityHistory) *Registry {
	return &Registry{
		evaluators: []Evaluator{
			&distanceMilestoneEvaluator{history: history},
			&streakEvaluator{history: history},
			&timeBasedEvaluator{history: history},
			&consistencyEvaluator{history: history},
			&routeCompletionEvaluator{history: history},
			&explorerEvaluator{history: history},
			&locationBasedEvaluator{history: history},
			&specialEvaluator{history: history},
		},
	}
}

func (r *Registry) Resolve(kind models.TrophyKind) (Evaluator, error) {
	for _, e := range r.evaluators {
		if e.Supports(kind) {
			return e, nil
		}
	}
	return nil, &UnsupportedKindError{Kind: kind}
}
