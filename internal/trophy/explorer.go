package trophy

import (
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
)

// explorerEvaluator counts distinct geographic areas a user has started
// activities in. With gridSizeMeters set, start points are bucketed into
// square grid cells; otherwise starts further apart than radiusMeters
// count as distinct areas (greedy clustering over chronological order,
// so the result is deterministic for a fixed history).
type explorerEvaluator struct {
	history ActivityHistory
}

func (e *explorerEvaluator) Supports(kind models.TrophyKind) bool {
	return kind == models.KindExplorer
}

func (e *explorerEvaluator) config(t models.Trophy) (*ExplorerConfig, error) {
	cfg, err := ParseConfig(t.Kind, []byte(t.CriteriaConfig))
	if err != nil {
		return nil, err
	}
	return cfg.(*ExplorerConfig), nil
}

func (e *explorerEvaluator) CheckCriteria(user models.User, activity *models.UserActivity, t models.Trophy) (bool, error) {
	cfg, err := e.config(t)
	if err != nil {
		return false, err
	}
	areas, err := e.distinctAreas(user.ID, cfg)
	if err != nil {
		return false, err
	}
	return areas >= cfg.UniqueAreasCount, nil
}

func (e *explorerEvaluator) CalculateProgress(user models.User, t models.Trophy) (Progress, error) {
	cfg, err := e.config(t)
	if err != nil {
		return Progress{}, err
	}
	areas, err := e.distinctAreas(user.ID, cfg)
	if err != nil {
		return Progress{}, err
	}
	return NewProgress(float64(areas), float64(cfg.UniqueAreasCount)), nil
}

func (e *explorerEvaluator) distinctAreas(userID string, cfg *ExplorerConfig) (int, error) {
	activities, err := e.history.ActivitiesSince(userID, time.Time{})
	if err != nil {
		return 0, err
	}

	if cfg.GridSizeMeters != nil {
		cells := make(map[string]bool)
		for _, a := range activities {
			if !qualifiesForArea(a, cfg) {
				continue
			}
			cells[gridCellKey(a.StartLatitude, a.StartLongitude, *cfg.GridSizeMeters)] = true
		}
		return len(cells), nil
	}

	// Radius mode: the first activity in a new area becomes that area's
	// anchor point.
	type anchor struct{ lat, lng float64 }
	var anchors []anchor
	radius := float64(*cfg.RadiusMeters)
	for _, a := range activities {
		if !qualifiesForArea(a, cfg) {
			continue
		}
		known := false
		for _, an := range anchors {
			if haversineMeters(a.StartLatitude, a.StartLongitude, an.lat, an.lng) <= radius {
				known = true
				break
			}
		}
		if !known {
			anchors = append(anchors, anchor{a.StartLatitude, a.StartLongitude})
		}
	}
	return len(anchors), nil
}

func qualifiesForArea(a models.UserActivity, cfg *ExplorerConfig) bool {
	if a.StartLatitude == 0 && a.StartLongitude == 0 {
		return false
	}
	if cfg.MinDistancePerArea != nil && a.DistanceMeters < float64(*cfg.MinDistancePerArea) {
		return false
	}
	return true
}
