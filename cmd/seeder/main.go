package main

import (
	"log"

	"github.com/pushp314/runtrail-backend/internal/config"
	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/pushp314/runtrail-backend/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("🔄 Running migrations (just in case)...")
	database.DB.AutoMigrate(
		&models.User{},
		&models.Route{},
		&models.UserActivity{},
		&models.TrackPoint{},
		&models.Trophy{},
		&models.UserTrophy{},
	)

	seeds.SeedUsers()
	seeds.SeedRoutes()
	seeds.SeedTrophies()

	log.Println("🌱 Seeding complete")
}
