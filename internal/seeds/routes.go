package seeds

import (
	"log"

	"github.com/google/uuid"
	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
)

func SeedRoutes() {
	log.Println("🗺️  Seeding Predefined Routes...")

	routes := []models.Route{
		{
			Name:           "Riverside Loop",
			Description:    "Flat 5k loop along the river, both directions popular.",
			DistanceMeters: 5000,
			StartLatitude:  52.5145,
			StartLongitude: 13.3501,
		},
		{
			Name:           "Old Town Circuit",
			Description:    "Cobblestone 8k through the historic center.",
			DistanceMeters: 8000,
			StartLatitude:  52.5200,
			StartLongitude: 13.4050,
		},
		{
			Name:           "Forest Trail",
			Description:    "Hilly 12k trail run, soft ground.",
			DistanceMeters: 12000,
			StartLatitude:  52.4570,
			StartLongitude: 13.2900,
		},
	}

	for i := range routes {
		routes[i].ID = uuid.New().String()
		routes[i].IsActive = true

		var existing models.Route
		if err := database.DB.Where("name = ?", routes[i].Name).First(&existing).Error; err == nil {
			continue
		}
		if err := database.DB.Create(&routes[i]).Error; err != nil {
			log.Printf("Failed to seed route %s: %v", routes[i].Name, err)
		}
	}

	log.Printf("✅ Seeded %d routes", len(routes))
}
