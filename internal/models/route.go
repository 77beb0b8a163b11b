package models

import "time"

// Route is a predefined named course runners can match against.
// GPS-track-to-route matching happens in a separate collaborator; this
// backend only stores the definition and consumes match results.
type Route struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name           string  `json:"name"`
	Description    string  `json:"description"`
	DistanceMeters float64 `json:"distanceMeters"`
	StartLatitude  float64 `json:"startLatitude"`
	StartLongitude float64 `json:"startLongitude"`
	IsActive       bool    `gorm:"default:true" json:"isActive"`
}
