package trophy

import (
	"bytes"
	"encoding/json"

	"github.com/pushp314/runtrail-backend/internal/models"
)

// CriteriaConfig is the typed form of a trophy's criteria payload. The
// set of variants is closed: one per TrophyKind, selected by the "type"
// discriminant field of the JSON payload.
type CriteriaConfig interface {
	Kind() models.TrophyKind
	validate() error
}

type DistanceScope string

const (
	ScopeSingleActivity DistanceScope = "SINGLE_ACTIVITY"
	ScopeTotal          DistanceScope = "TOTAL"
)

type DistanceMilestoneConfig struct {
	DistanceMeters int           `json:"distanceMeters"`
	Scope          DistanceScope `json:"scope"`
}

func (DistanceMilestoneConfig) Kind() models.TrophyKind { return models.KindDistanceMilestone }

func (c DistanceMilestoneConfig) validate() error {
	if c.DistanceMeters <= 0 {
		return newConfigParseError(c.Kind(), "distanceMeters must be positive, got %d", c.DistanceMeters)
	}
	if c.Scope != ScopeSingleActivity && c.Scope != ScopeTotal {
		return newConfigParseError(c.Kind(), "scope must be SINGLE_ACTIVITY or TOTAL, got %q", c.Scope)
	}
	return nil
}

type StreakConfig struct {
	ConsecutiveDays       int  `json:"consecutiveDays"`
	MinimumDistancePerDay *int `json:"minimumDistancePerDay,omitempty"`
}

func (StreakConfig) Kind() models.TrophyKind { return models.KindStreak }

func (c StreakConfig) validate() error {
	if c.ConsecutiveDays <= 0 {
		return newConfigParseError(c.Kind(), "consecutiveDays must be positive, got %d", c.ConsecutiveDays)
	}
	if c.MinimumDistancePerDay != nil && *c.MinimumDistancePerDay <= 0 {
		return newConfigParseError(c.Kind(), "minimumDistancePerDay must be positive when set")
	}
	return nil
}

type TimeBasedConfig struct {
	StartHour       int   `json:"startHour"`
	EndHour         int   `json:"endHour"`
	RequiredCount   int   `json:"requiredCount"`
	DaysOfWeek      []int `json:"daysOfWeek,omitempty"` // ISO: 1=Monday .. 7=Sunday
	MinimumDistance *int  `json:"minimumDistance,omitempty"`
}

func (TimeBasedConfig) Kind() models.TrophyKind { return models.KindTimeBased }

func (c TimeBasedConfig) validate() error {
	if c.StartHour < 0 || c.StartHour > 23 || c.EndHour < 0 || c.EndHour > 23 {
		return newConfigParseError(c.Kind(), "hours must be in [0,23], got start=%d end=%d", c.StartHour, c.EndHour)
	}
	// Wrapping windows are not supported
	if c.StartHour >= c.EndHour {
		return newConfigParseError(c.Kind(), "startHour (%d) must be before endHour (%d)", c.StartHour, c.EndHour)
	}
	if c.RequiredCount <= 0 {
		return newConfigParseError(c.Kind(), "requiredCount must be positive, got %d", c.RequiredCount)
	}
	for _, d := range c.DaysOfWeek {
		if d < 1 || d > 7 {
			return newConfigParseError(c.Kind(), "daysOfWeek entries must be in [1,7], got %d", d)
		}
	}
	return nil
}

type ConsistencyConfig struct {
	MinActivitiesPerWeek   int  `json:"minActivitiesPerWeek"`
	NumberOfWeeks          int  `json:"numberOfWeeks"`
	MinDistancePerActivity *int `json:"minDistancePerActivity,omitempty"`
}

func (ConsistencyConfig) Kind() models.TrophyKind { return models.KindConsistency }

func (c ConsistencyConfig) validate() error {
	if c.MinActivitiesPerWeek <= 0 {
		return newConfigParseError(c.Kind(), "minActivitiesPerWeek must be positive, got %d", c.MinActivitiesPerWeek)
	}
	if c.NumberOfWeeks <= 0 {
		return newConfigParseError(c.Kind(), "numberOfWeeks must be positive, got %d", c.NumberOfWeeks)
	}
	return nil
}

// DefaultMinMatchPercentage is applied when a route completion config
// omits minMatchPercentage.
const DefaultMinMatchPercentage = 80

type RouteCompletionConfig struct {
	RouteID            *string `json:"routeId,omitempty"`
	UniqueRoutesCount  *int    `json:"uniqueRoutesCount,omitempty"`
	MinMatchPercentage int     `json:"minMatchPercentage,omitempty"`
}

func (RouteCompletionConfig) Kind() models.TrophyKind { return models.KindRouteCompletion }

func (c RouteCompletionConfig) validate() error {
	if c.RouteID == nil && c.UniqueRoutesCount == nil {
		return newConfigParseError(c.Kind(), "either routeId or uniqueRoutesCount must be set")
	}
	if c.RouteID != nil && c.UniqueRoutesCount != nil {
		return newConfigParseError(c.Kind(), "routeId and uniqueRoutesCount are mutually exclusive")
	}
	if c.UniqueRoutesCount != nil && *c.UniqueRoutesCount <= 0 {
		return newConfigParseError(c.Kind(), "uniqueRoutesCount must be positive when set")
	}
	if c.MinMatchPercentage < 0 || c.MinMatchPercentage > 100 {
		return newConfigParseError(c.Kind(), "minMatchPercentage must be in [0,100], got %d", c.MinMatchPercentage)
	}
	return nil
}

type ExplorerConfig struct {
	UniqueAreasCount   int  `json:"uniqueAreasCount"`
	GridSizeMeters     *int `json:"gridSizeMeters,omitempty"`
	RadiusMeters       *int `json:"radiusMeters,omitempty"`
	MinDistancePerArea *int `json:"minDistancePerArea,omitempty"`
}

func (ExplorerConfig) Kind() models.TrophyKind { return models.KindExplorer }

func (c ExplorerConfig) validate() error {
	if c.UniqueAreasCount <= 0 {
		return newConfigParseError(c.Kind(), "uniqueAreasCount must be positive, got %d", c.UniqueAreasCount)
	}
	if c.GridSizeMeters == nil && c.RadiusMeters == nil {
		return newConfigParseError(c.Kind(), "either gridSizeMeters or radiusMeters must be set")
	}
	if c.GridSizeMeters != nil && *c.GridSizeMeters <= 0 {
		return newConfigParseError(c.Kind(), "gridSizeMeters must be positive when set")
	}
	if c.RadiusMeters != nil && *c.RadiusMeters <= 0 {
		return newConfigParseError(c.Kind(), "radiusMeters must be positive when set")
	}
	return nil
}

type LocationBasedConfig struct {
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	CollectionRadiusMeters int     `json:"collectionRadiusMeters"`
	LocationName           string  `json:"locationName,omitempty"`
}

func (LocationBasedConfig) Kind() models.TrophyKind { return models.KindLocationBased }

func (c LocationBasedConfig) validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return newConfigParseError(c.Kind(), "latitude must be in [-90,90], got %f", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return newConfigParseError(c.Kind(), "longitude must be in [-180,180], got %f", c.Longitude)
	}
	if c.CollectionRadiusMeters <= 0 {
		return newConfigParseError(c.Kind(), "collectionRadiusMeters must be positive, got %d", c.CollectionRadiusMeters)
	}
	return nil
}

// Special sub-types handled by the special evaluator.
const (
	SpecialBirthdayRun   = "BIRTHDAY_RUN"
	SpecialPerformance   = "PERFORMANCE"
	SpecialDateBased     = "DATE_BASED"
	SpecialFirstActivity = "FIRST_ACTIVITY"
)

type SpecialConfig struct {
	SpecialType        string `json:"specialType"`
	DistanceMeters     *int   `json:"distanceMeters,omitempty"`
	MaxDurationSeconds *int   `json:"maxDurationSeconds,omitempty"`
	Month              *int   `json:"month,omitempty"`
	Day                *int   `json:"day,omitempty"`
	WeatherCondition   string `json:"weatherCondition,omitempty"`
	CustomValue        string `json:"customValue,omitempty"`
}

func (SpecialConfig) Kind() models.TrophyKind { return models.KindSpecial }

func (c SpecialConfig) validate() error {
	if c.SpecialType == "" {
		return newConfigParseError(c.Kind(), "specialType must not be empty")
	}
	switch c.SpecialType {
	case SpecialPerformance:
		if c.DistanceMeters == nil || *c.DistanceMeters <= 0 {
			return newConfigParseError(c.Kind(), "PERFORMANCE requires a positive distanceMeters")
		}
		if c.MaxDurationSeconds == nil || *c.MaxDurationSeconds <= 0 {
			return newConfigParseError(c.Kind(), "PERFORMANCE requires a positive maxDurationSeconds")
		}
	case SpecialDateBased:
		if c.Month == nil || *c.Month < 1 || *c.Month > 12 {
			return newConfigParseError(c.Kind(), "DATE_BASED requires month in [1,12]")
		}
		if c.Day == nil || *c.Day < 1 || *c.Day > 31 {
			return newConfigParseError(c.Kind(), "DATE_BASED requires day in [1,31]")
		}
	}
	// Other specialType values carry no required fields here; unknown ones
	// are rejected by the special evaluator at run time.
	return nil
}

// discriminant is peeked before decoding to verify payload/kind agreement.
type discriminant struct {
	Type string `json:"type"`
}

// ParseConfig decodes a criteria payload into the typed variant matching
// kind. Parsing fails closed: an empty payload, malformed JSON, a missing
// or mismatched discriminant, an unknown kind and out-of-range fields are
// all reported as a ConfigParseError, never a silent default. Unknown
// extra fields are ignored for forward compatibility.
func ParseConfig(kind models.TrophyKind, payload []byte) (CriteriaConfig, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, newConfigParseError(kind, "payload is empty")
	}

	var disc discriminant
	if err := json.Unmarshal(payload, &disc); err != nil {
		return nil, newConfigParseError(kind, "malformed JSON: %v", err)
	}
	if disc.Type == "" {
		return nil, newConfigParseError(kind, "missing type discriminant")
	}
	if disc.Type != string(kind) {
		return nil, newConfigParseError(kind, "discriminant %q does not match trophy kind", disc.Type)
	}

	var cfg CriteriaConfig
	switch kind {
	case models.KindDistanceMilestone:
		cfg = &DistanceMilestoneConfig{}
	case models.KindStreak:
		cfg = &StreakConfig{}
	case models.KindTimeBased:
		cfg = &TimeBasedConfig{}
	case models.KindConsistency:
		cfg = &ConsistencyConfig{}
	case models.KindRouteCompletion:
		cfg = &RouteCompletionConfig{}
	case models.KindExplorer:
		cfg = &ExplorerConfig{}
	case models.KindLocationBased:
		cfg = &LocationBasedConfig{}
	case models.KindSpecial:
		cfg = &SpecialConfig{}
	default:
		return nil, newConfigParseError(kind, "unknown trophy kind")
	}

	if err := json.Unmarshal(payload, cfg); err != nil {
		return nil, newConfigParseError(kind, "malformed JSON: %v", err)
	}

	if rc, ok := cfg.(*RouteCompletionConfig); ok && rc.MinMatchPercentage == 0 {
		rc.MinMatchPercentage = DefaultMinMatchPercentage
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SerializeConfig is the exact inverse of ParseConfig: it marshals the
// variant with its type discriminant so that parse(serialize(x)) == x.
func SerializeConfig(cfg CriteriaConfig) ([]byte, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = string(cfg.Kind())

	return json.Marshal(fields)
}
