package trophy

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
	"gorm.io/gorm"
)

// AwardStatus is the outcome of an award attempt.
type AwardStatus string

const (
	StatusAwarded        AwardStatus = "AWARDED"
	StatusAlreadyAwarded AwardStatus = "ALREADY_AWARDED"
	StatusNotEligible    AwardStatus = "NOT_ELIGIBLE"
)

// Registrar records one-time awards. It relies on the composite unique
// index on user_trophies(user_id, trophy_id): the insert is optimistic
// and a constraint violation is mapped to StatusAlreadyAwarded, so
// concurrent duplicate attempts for the same pair all observe a
// consistent outcome and exactly one row is persisted.
type Registrar struct {
	db *gorm.DB
}

func NewRegistrar(db *gorm.DB) *Registrar {
	return &Registrar{db: db}
}

// TryAward inserts the award record. metadata is free-form audit data
// (e.g. the value that satisfied the criteria) stored as JSON.
func (r *Registrar) TryAward(user models.User, t models.Trophy, activity *models.UserActivity, metadata map[string]interface{}) (AwardStatus, error) {
	award := models.UserTrophy{
		UserID:    user.ID,
		TrophyID:  t.ID,
		AwardedAt: time.Now(),
	}
	if activity != nil {
		award.ActivityID = &activity.ID
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err == nil {
			award.Metadata = string(raw)
		}
	}

	if err := r.db.Create(&award).Error; err != nil {
		if isDuplicateKey(err) {
			return StatusAlreadyAwarded, nil
		}
		return StatusNotEligible, err
	}

	return StatusAwarded, nil
}

// isDuplicateKey detects a unique constraint violation across the drivers
// we run against (pgx in production, sqlite in tests).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
