package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Direction string

const (
	DirectionClockwise        Direction = "CLOCKWISE"
	DirectionCounterClockwise Direction = "COUNTER_CLOCKWISE"
	DirectionUnknown          Direction = "UNKNOWN"
)

// UserActivity is an immutable record of a completed run. Route matching
// fields (MatchedRouteID, Direction, RouteCompletionPercentage) are
// populated by the matching collaborator before ingestion; the trophy
// engine treats the whole record as read-only.
type UserActivity struct {
	ID     string `gorm:"primaryKey;type:text" json:"id"`
	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	MatchedRouteID *string `gorm:"index" json:"matchedRouteId,omitempty"`
	MatchedRoute   *Route  `gorm:"foreignKey:MatchedRouteID" json:"matchedRoute,omitempty"`

	Direction Direction `gorm:"type:text;default:'UNKNOWN'" json:"direction"`

	StartedAt       time.Time `gorm:"index" json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	DurationSeconds int       `json:"durationSeconds"`
	DistanceMeters  float64   `json:"distanceMeters"`

	RouteCompletionPercentage float64 `json:"routeCompletionPercentage"`
	CompletedFullRoute        bool    `json:"completedFullRoute"`

	StartLatitude  float64 `json:"startLatitude"`
	StartLongitude float64 `json:"startLongitude"`

	TrackPoints []TrackPoint `gorm:"foreignKey:ActivityID" json:"trackPoints,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}

func (ua *UserActivity) BeforeCreate(tx *gorm.DB) (err error) {
	if ua.ID == "" {
		ua.ID = uuid.New().String()
	}
	return
}

// TrackPoint is a single recorded GPS sample of an activity, ordered by Seq.
type TrackPoint struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	ActivityID string  `gorm:"index;not null" json:"-"`
	Seq        int     `json:"seq"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	TimeOffset int     `json:"timeOffset"` // seconds since activity start
}
