package services

import (
	"time"

	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/pushp314/runtrail-backend/internal/trophy"
	"github.com/pushp314/runtrail-backend/pkg/logger"
)

// IngestActivity persists a completed run and triggers trophy evaluation
// for the owning user. The activity arrives with route matching fields
// already populated by the matching collaborator.
func IngestActivity(user models.User, activity *models.UserActivity) ([]trophy.AwardOutcome, error) {
	activity.UserID = user.ID
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	if err := database.DB.Create(activity).Error; err != nil {
		return nil, err
	}

	engine := trophy.NewEngine(database.DB)
	outcomes, err := engine.EvaluateForActivity(user, activity)
	if err != nil {
		// The activity is saved; evaluation failure should not look like
		// a failed ingestion to the client, but it must be visible in ops.
		logger.Error().
			Err(err).
			Str("user", user.ID).
			Str("activity", activity.ID).
			Msg("Trophy evaluation failed after ingestion")
		return nil, nil
	}

	return outcomes, nil
}

// NewlyAwarded filters evaluation outcomes down to fresh awards, for the
// ingestion response payload.
func NewlyAwarded(outcomes []trophy.AwardOutcome) []trophy.AwardOutcome {
	var awarded []trophy.AwardOutcome
	for _, o := range outcomes {
		if o.Status == trophy.StatusAwarded {
			awarded = append(awarded, o)
		}
	}
	return awarded
}
