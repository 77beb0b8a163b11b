package seeds

import (
	"log"

	"github.com/google/uuid"
	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
)

func SeedTrophies() {
	log.Println("🏆 Seeding Trophy Definitions...")

	trophies := []models.Trophy{
		{
			Code:           "first_steps",
			Name:           "First Steps",
			Description:    "Record your very first run.",
			Kind:           models.KindSpecial,
			Category:       1,
			DisplayOrder:   1,
			CriteriaConfig: `{"type":"SPECIAL","specialType":"FIRST_ACTIVITY"}`,
		},
		{
			Code:           "ten_k_single",
			Name:           "10K Finisher",
			Description:    "Run 10 kilometers in a single activity.",
			Kind:           models.KindDistanceMilestone,
			Category:       2,
			DisplayOrder:   2,
			CriteriaConfig: `{"type":"DISTANCE_MILESTONE","distanceMeters":10000,"scope":"SINGLE_ACTIVITY"}`,
		},
		{
			Code:           "hundred_k_total",
			Name:           "Century Club",
			Description:    "Accumulate 100 kilometers of lifetime running.",
			Kind:           models.KindDistanceMilestone,
			Category:       2,
			DisplayOrder:   3,
			CriteriaConfig: `{"type":"DISTANCE_MILESTONE","distanceMeters":100000,"scope":"TOTAL"}`,
		},
		{
			Code:           "week_streak",
			Name:           "Seven Day Streak",
			Description:    "Run on seven consecutive days.",
			Kind:           models.KindStreak,
			Category:       3,
			DisplayOrder:   4,
			CriteriaConfig: `{"type":"STREAK","consecutiveDays":7,"minimumDistancePerDay":1000}`,
		},
		{
			Code:           "early_bird",
			Name:           "Early Bird",
			Description:    "Start ten runs between 5 and 7 in the morning.",
			Kind:           models.KindTimeBased,
			Category:       3,
			DisplayOrder:   5,
			CriteriaConfig: `{"type":"TIME_BASED","startHour":5,"endHour":7,"requiredCount":10}`,
		},
		{
			Code:           "weekend_warrior",
			Name:           "Weekend Warrior",
			Description:    "Complete five weekend runs of at least 5 kilometers.",
			Kind:           models.KindTimeBased,
			Category:       2,
			DisplayOrder:   6,
			CriteriaConfig: `{"type":"TIME_BASED","startHour":6,"endHour":22,"requiredCount":5,"daysOfWeek":[6,7],"minimumDistance":5000}`,
		},
		{
			Code:           "steady_month",
			Name:           "Steady Month",
			Description:    "Run at least three times a week for four weeks in a row.",
			Kind:           models.KindConsistency,
			Category:       4,
			DisplayOrder:   7,
			CriteriaConfig: `{"type":"CONSISTENCY","minActivitiesPerWeek":3,"numberOfWeeks":4,"minDistancePerActivity":2000}`,
		},
		{
			Code:           "route_collector",
			Name:           "Route Collector",
			Description:    "Complete five different predefined routes.",
			Kind:           models.KindRouteCompletion,
			Category:       3,
			DisplayOrder:   8,
			CriteriaConfig: `{"type":"ROUTE_COMPLETION","uniqueRoutesCount":5,"minMatchPercentage":80}`,
		},
		{
			Code:           "explorer_10",
			Name:           "Explorer",
			Description:    "Start runs in ten different areas of the city.",
			Kind:           models.KindExplorer,
			Category:       4,
			DisplayOrder:   9,
			CriteriaConfig: `{"type":"EXPLORER","uniqueAreasCount":10,"gridSizeMeters":1000}`,
		},
		{
			Code:           "city_hall_sprint",
			Name:           "City Hall Sprint",
			Description:    "Finish a run at the old city hall.",
			Kind:           models.KindLocationBased,
			Category:       4,
			DisplayOrder:   10,
			CriteriaConfig: `{"type":"LOCATION_BASED","latitude":52.5170,"longitude":13.3889,"collectionRadiusMeters":200}`,
		},
		{
			Code:           "birthday_run",
			Name:           "Birthday Run",
			Description:    "Go for a run on your birthday.",
			Kind:           models.KindSpecial,
			Category:       1,
			DisplayOrder:   11,
			CriteriaConfig: `{"type":"SPECIAL","specialType":"BIRTHDAY_RUN"}`,
		},
		{
			Code:           "sub50_10k",
			Name:           "Speed Demon",
			Description:    "Run 10 kilometers in under 50 minutes.",
			Kind:           models.KindSpecial,
			Category:       5,
			DisplayOrder:   12,
			CriteriaConfig: `{"type":"SPECIAL","specialType":"PERFORMANCE","distanceMeters":10000,"maxDurationSeconds":3000}`,
		},
	}

	for i := range trophies {
		trophies[i].ID = uuid.New().String()
		trophies[i].IsActive = true

		var existing models.Trophy
		if err := database.DB.Where("code = ?", trophies[i].Code).First(&existing).Error; err == nil {
			continue // already seeded
		}
		if err := database.DB.Create(&trophies[i]).Error; err != nil {
			log.Printf("Failed to seed trophy %s: %v", trophies[i].Code, err)
		}
	}

	log.Printf("✅ Seeded %d trophy definitions", len(trophies))
}
