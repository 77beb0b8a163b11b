package trophy

import (
	"fmt"
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
)

// consistencyEvaluator checks for sustained weekly activity: the most
// recent numberOfWeeks calendar weeks (ISO weeks, Monday start) must each
// contain at least minActivitiesPerWeek qualifying activities. A miss in
// the current week resets the run.
type consistencyEvaluator struct {
	history ActivityHistory
}

func (e *consistencyEvaluator) Supports(kind models.TrophyKind) bool {
	return kind == models.KindConsistency
}

func (e *consistencyEvaluator) config(t models.Trophy) (*ConsistencyConfig, error) {
	cfg, err := ParseConfig(t.Kind, []byte(t.CriteriaConfig))
	if err != nil {
		return nil, err
	}
	return cfg.(*ConsistencyConfig), nil
}

func (e *consistencyEvaluator) CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error) {
	cfg, err := e.config(t)
	if err != nil {
		return false, err
	}
	run, err := e.qualifyingWeekRun(user.ID, cfg)
	if err != nil {
		return false, err
	}
	return run >= cfg.NumberOfWeeks, nil
}

func (e *consistencyEvaluator) CalculateProgress(user models.User, t models.Trophy) (Progress, error) {
	cfg, err := e.config(t)
	if err != nil {
		return Progress{}, err
	}
	run, err := e.qualifyingWeekRun(user.ID, cfg)
	if err != nil {
		return Progress{}, err
	}
	return NewProgress(float64(run), float64(cfg.NumberOfWeeks)), nil
}

// qualifyingWeekRun counts consecutive qualifying weeks ending with the
// current calendar week.
func (e *consistencyEvaluator) qualifyingWeekRun(userID string, cfg *ConsistencyConfig) (int, error) {
	now := time.Now()
	since := startOfISOWeek(now).AddDate(0, 0, -7*cfg.NumberOfWeeks)

	activities, err := e.history.ActivitiesSince(userID, since)
	if err != nil {
		return 0, err
	}

	perWeek := make(map[string]int)
	for _, a := range activities {
		if cfg.MinDistancePerActivity != nil && a.DistanceMeters < float64(*cfg.MinDistancePerActivity) {
			continue
		}
		perWeek[weekKey(a.StartedAt)]++
	}

	run := 0
	cursor := now
	for i := 0; i <= cfg.NumberOfWeeks; i++ {
		if perWeek[weekKey(cursor)] < cfg.MinActivitiesPerWeek {
			break
		}
		run++
		cursor = cursor.AddDate(0, 0, -7)
	}
	return run, nil
}

func startOfISOWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := isoWeekday(day) - 1
	return day.AddDate(0, 0, -offset)
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
