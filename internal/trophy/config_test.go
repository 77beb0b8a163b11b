package trophy

import (
	"testing"

	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestParseConfig_RoundTrip(t *testing.T) {
	variants := []CriteriaConfig{
		&DistanceMilestoneConfig{DistanceMeters: 10000, Scope: ScopeTotal},
		&DistanceMilestoneConfig{DistanceMeters: 5000, Scope: ScopeSingleActivity},
		&StreakConfig{ConsecutiveDays: 7, MinimumDistancePerDay: intPtr(1000)},
		&TimeBasedConfig{StartHour: 5, EndHour: 7, RequiredCount: 3, DaysOfWeek: []int{6, 7}, MinimumDistance: intPtr(5000)},
		&ConsistencyConfig{MinActivitiesPerWeek: 3, NumberOfWeeks: 4, MinDistancePerActivity: intPtr(2000)},
		&RouteCompletionConfig{RouteID: strPtr("route-1"), MinMatchPercentage: 90},
		&RouteCompletionConfig{UniqueRoutesCount: intPtr(5), MinMatchPercentage: 80},
		&ExplorerConfig{UniqueAreasCount: 10, GridSizeMeters: intPtr(1000)},
		&ExplorerConfig{UniqueAreasCount: 3, RadiusMeters: intPtr(500), MinDistancePerArea: intPtr(1000)},
		&LocationBasedConfig{Latitude: 52.52, Longitude: 13.405, CollectionRadiusMeters: 200, LocationName: "TV Tower"},
		&SpecialConfig{SpecialType: SpecialFirstActivity},
		&SpecialConfig{SpecialType: SpecialPerformance, DistanceMeters: intPtr(10000), MaxDurationSeconds: intPtr(3000)},
		&SpecialConfig{SpecialType: SpecialDateBased, Month: intPtr(12), Day: intPtr(31)},
	}

	for _, original := range variants {
		payload, err := SerializeConfig(original)
		require.NoError(t, err, "serialize %T", original)

		parsed, err := ParseConfig(original.Kind(), payload)
		require.NoError(t, err, "parse %s", payload)

		assert.Equal(t, original, parsed, "round-trip for %s", payload)
	}
}

func TestParseConfig_FailsClosed(t *testing.T) {
	cases := []struct {
		name    string
		kind    models.TrophyKind
		payload string
	}{
		{"empty payload", models.KindStreak, ""},
		{"whitespace payload", models.KindStreak, "   "},
		{"malformed json", models.KindStreak, `{"type":"STREAK",`},
		{"missing discriminant", models.KindStreak, `{"consecutiveDays":7}`},
		{"kind mismatch", models.KindStreak, `{"type":"EXPLORER","uniqueAreasCount":3,"gridSizeMeters":500}`},
		{"unknown kind", models.TrophyKind("MYSTERY"), `{"type":"MYSTERY"}`},
		{"zero threshold", models.KindDistanceMilestone, `{"type":"DISTANCE_MILESTONE","distanceMeters":0,"scope":"TOTAL"}`},
		{"bad scope", models.KindDistanceMilestone, `{"type":"DISTANCE_MILESTONE","distanceMeters":1000,"scope":"WEEKLY"}`},
		{"wrapping hour window", models.KindTimeBased, `{"type":"TIME_BASED","startHour":22,"endHour":5,"requiredCount":3}`},
		{"hour out of range", models.KindTimeBased, `{"type":"TIME_BASED","startHour":5,"endHour":24,"requiredCount":3}`},
		{"bad weekday", models.KindTimeBased, `{"type":"TIME_BASED","startHour":5,"endHour":7,"requiredCount":3,"daysOfWeek":[0]}`},
		{"route config without target", models.KindRouteCompletion, `{"type":"ROUTE_COMPLETION","minMatchPercentage":80}`},
		{"route config with both targets", models.KindRouteCompletion, `{"type":"ROUTE_COMPLETION","routeId":"r1","uniqueRoutesCount":3}`},
		{"explorer without bucketing", models.KindExplorer, `{"type":"EXPLORER","uniqueAreasCount":5}`},
		{"location bad latitude", models.KindLocationBased, `{"type":"LOCATION_BASED","latitude":95,"longitude":0,"collectionRadiusMeters":100}`},
		{"special empty type", models.KindSpecial, `{"type":"SPECIAL","specialType":""}`},
		{"performance without duration", models.KindSpecial, `{"type":"SPECIAL","specialType":"PERFORMANCE","distanceMeters":10000}`},
		{"date based bad month", models.KindSpecial, `{"type":"SPECIAL","specialType":"DATE_BASED","month":13,"day":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ParseConfig(tc.kind, []byte(tc.payload))
			assert.Nil(t, cfg)
			require.Error(t, err)

			var parseErr *ConfigParseError
			assert.ErrorAs(t, err, &parseErr, "all parse failures report ConfigParseError")
		})
	}
}

func TestParseConfig_IgnoresUnknownFields(t *testing.T) {
	payload := `{"type":"STREAK","consecutiveDays":7,"futureField":"ignored"}`

	cfg, err := ParseConfig(models.KindStreak, []byte(payload))
	require.NoError(t, err)

	streak := cfg.(*StreakConfig)
	assert.Equal(t, 7, streak.ConsecutiveDays)
}

func TestParseConfig_AppliesDefaultMatchPercentage(t *testing.T) {
	payload := `{"type":"ROUTE_COMPLETION","uniqueRoutesCount":5}`

	cfg, err := ParseConfig(models.KindRouteCompletion, []byte(payload))
	require.NoError(t, err)

	rc := cfg.(*RouteCompletionConfig)
	assert.Equal(t, DefaultMinMatchPercentage, rc.MinMatchPercentage)
}
