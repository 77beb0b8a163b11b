package trophy

import (
	"fmt"
	"time"

	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/pushp314/runtrail-backend/pkg/logger"
	"gorm.io/gorm"
)

// AwardOutcome reports what happened for one trophy during an evaluation
// pass.
type AwardOutcome struct {
	TrophyID   string      `json:"trophyId"`
	TrophyCode string      `json:"trophyCode"`
	Status     AwardStatus `json:"status"`
	Err        error       `json:"-"`
}

// Engine ties the registry, history provider and registrar together. It
// is cheap to construct; handlers build one per request.
type Engine struct {
	db        *gorm.DB
	history   ActivityHistory
	registry  *Registry
	registrar *Registrar
}

func NewEngine(db *gorm.DB) *Engine {
	history := NewActivityHistory(db)
	return &Engine{
		db:        db,
		history:   history,
		registry:  NewRegistry(history),
		registrar: NewRegistrar(db),
	}
}

const progressCacheTTL = 60 * time.Second

func progressCacheKey(userID, trophyID string) string {
	return fmt.Sprintf("trophy_progress:%s:%s", userID, trophyID)
}

// EvaluateForActivity runs every active trophy the user has not yet
// earned against a freshly ingested activity. A failure on one trophy is
// logged and reported in its outcome but never aborts the others.
//
// Streaks and consistency windows are re-derived from (windowed) history
// on every call rather than kept incrementally; if configured windows
// ever grow large this is the place to add cached state.
func (e *Engine) EvaluateForActivity(user models.User, activity *models.UserActivity) ([]AwardOutcome, error) {
	return e.evaluate(user, activity)
}

// RecheckUser is the bulk/periodic path: same evaluation without a
// triggering activity. Event-driven kinds report not satisfied.
func (e *Engine) RecheckUser(user models.User) ([]AwardOutcome, error) {
	return e.evaluate(user, nil)
}

func (e *Engine) evaluate(user models.User, activity *models.UserActivity) ([]AwardOutcome, error) {
	trophies, err := e.pendingTrophies(user.ID)
	if err != nil {
		return nil, err
	}

	var outcomes []AwardOutcome
	for _, t := range trophies {
		outcome := e.evaluateOne(user, activity, t)
		if outcome.Status == StatusAwarded {
			database.CacheDelete(progressCacheKey(user.ID, t.ID))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (e *Engine) evaluateOne(user models.User, activity *models.UserActivity, t models.Trophy) AwardOutcome {
	outcome := AwardOutcome{TrophyID: t.ID, TrophyCode: t.Code, Status: StatusNotEligible}

	evaluator, err := e.registry.Resolve(t.Kind)
	if err != nil {
		// Operational bug: a trophy kind nobody evaluates
		logger.Error().
			Str("trophy", t.Code).
			Str("kind", string(t.Kind)).
			Msg("No evaluator registered for trophy kind")
		outcome.Err = err
		return outcome
	}

	met, err := evaluator.CheckCriteria(user, activity, t)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("trophy", t.Code).
			Str("user", user.ID).
			Msg("Trophy criteria check failed")
		outcome.Err = err
		return outcome
	}
	if !met {
		return outcome
	}

	metadata := map[string]interface{}{"kind": string(t.Kind)}
	if activity != nil {
		metadata["distanceMeters"] = activity.DistanceMeters
		metadata["startedAt"] = activity.StartedAt
	}

	status, err := e.registrar.TryAward(user, t, activity, metadata)
	if err != nil {
		logger.Error().
			Err(err).
			Str("trophy", t.Code).
			Str("user", user.ID).
			Msg("Trophy award insert failed")
		outcome.Err = err
		return outcome
	}

	outcome.Status = status
	if status == StatusAwarded {
		logger.Info().
			Str("trophy", t.Code).
			Str("user", user.ID).
			Msg("Trophy awarded")
	}
	return outcome
}

// pendingTrophies loads active trophies the user has not earned yet.
func (e *Engine) pendingTrophies(userID string) ([]models.Trophy, error) {
	var trophies []models.Trophy
	err := e.db.
		Where("is_active = ?", true).
		Where("id NOT IN (?)", e.db.Model(&models.UserTrophy{}).
			Select("trophy_id").
			Where("user_id = ?", userID)).
		Order("display_order ASC").
		Find(&trophies).Error
	if err != nil {
		return nil, err
	}
	return trophies, nil
}

// ProgressFor computes on-demand progress for one trophy, with a short
// Redis read-through cache for UI polling.
func (e *Engine) ProgressFor(user models.User, trophyID string) (Progress, error) {
	key := progressCacheKey(user.ID, trophyID)

	var cached Progress
	if err := database.CacheGet(key, &cached); err == nil {
		return cached, nil
	}

	var t models.Trophy
	if err := e.db.First(&t, "id = ?", trophyID).Error; err != nil {
		return Progress{}, err
	}

	// Already earned trophies are complete by definition
	var earned int64
	if err := e.db.Model(&models.UserTrophy{}).
		Where("user_id = ? AND trophy_id = ?", user.ID, trophyID).
		Count(&earned).Error; err != nil {
		return Progress{}, err
	}
	if earned > 0 {
		return NewProgress(1, 1), nil
	}

	evaluator, err := e.registry.Resolve(t.Kind)
	if err != nil {
		return Progress{}, err
	}

	progress, err := evaluator.CalculateProgress(user, t)
	if err != nil {
		return Progress{}, err
	}

	database.CacheSet(key, progress, progressCacheTTL)
	return progress, nil
}
