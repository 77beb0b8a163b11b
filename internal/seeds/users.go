package seeds

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers() {
	log.Println("👤 Seeding Demo Users...")

	password, _ := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	users := []models.User{
		{
			Name:     "Admin",
			Username: "admin",
			Email:    "admin@runtrail.local",
			Role:     models.RoleAdmin,
		},
		{
			Name:        "Demo Runner",
			Username:    "demo_runner",
			Email:       "demo@runtrail.local",
			Role:        models.RoleUser,
			DateOfBirth: &dob,
		},
	}

	for i := range users {
		users[i].ID = uuid.New().String()
		users[i].Password = string(password)

		var existing models.User
		if err := database.DB.Where("email = ?", users[i].Email).First(&existing).Error; err == nil {
			continue
		}
		if err := database.DB.Create(&users[i]).Error; err != nil {
			log.Printf("Failed to seed user %s: %v", users[i].Username, err)
		}
	}

	log.Printf("✅ Seeded %d users", len(users))
}
