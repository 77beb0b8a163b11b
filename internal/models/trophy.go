package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrophyKind is the closed set of achievement categories. Evaluators and
// the criteria config codec both key off this value.
type TrophyKind string

const (
	KindDistanceMilestone TrophyKind = "DISTANCE_MILESTONE"
	KindStreak            TrophyKind = "STREAK"
	KindTimeBased         TrophyKind = "TIME_BASED"
	KindConsistency       TrophyKind = "CONSISTENCY"
	KindRouteCompletion   TrophyKind = "ROUTE_COMPLETION"
	KindExplorer          TrophyKind = "EXPLORER"
	KindLocationBased     TrophyKind = "LOCATION_BASED"
	KindSpecial           TrophyKind = "SPECIAL"
)

// AllTrophyKinds lists every supported kind, for validation and seeding.
var AllTrophyKinds = []TrophyKind{
	KindDistanceMilestone,
	KindStreak,
	KindTimeBased,
	KindConsistency,
	KindRouteCompletion,
	KindExplorer,
	KindLocationBased,
	KindSpecial,
}

// Trophy is an achievement definition. CriteriaConfig is an opaque JSON
// payload whose shape is determined by Kind; it is validated at save time
// by the config codec so invalid configs never reach evaluation.
type Trophy struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Code        string     `gorm:"uniqueIndex;not null" json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Kind        TrophyKind `gorm:"type:text;not null" json:"kind"`

	// Difficulty tier, display only
	Category     int  `gorm:"default:1" json:"category"`
	IsActive     bool `gorm:"default:true" json:"isActive"`
	DisplayOrder int  `gorm:"default:0" json:"displayOrder"`

	CriteriaConfig string `gorm:"type:jsonb" json:"criteriaConfig"`
}

func (t *Trophy) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

// UserTrophy is the one-time award record. The composite unique index on
// (user, trophy) is the engine's defence against concurrent duplicate
// awards: the registrar inserts optimistically and maps a constraint
// violation to "already awarded".
type UserTrophy struct {
	ID       string `gorm:"primaryKey;type:text" json:"id"`
	UserID   string `gorm:"uniqueIndex:idx_user_trophy;not null" json:"userId"`
	TrophyID string `gorm:"uniqueIndex:idx_user_trophy;not null" json:"trophyId"`

	Trophy Trophy `gorm:"foreignKey:TrophyID" json:"trophy"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	// Activity that triggered the award, if any
	ActivityID *string `json:"activityId,omitempty"`

	AwardedAt time.Time `json:"awardedAt"`

	// Free-form audit data, e.g. which value satisfied the criteria
	Metadata string `gorm:"type:jsonb" json:"metadata,omitempty"`
}

func (ut *UserTrophy) BeforeCreate(tx *gorm.DB) (err error) {
	if ut.ID == "" {
		ut.ID = uuid.New().String()
	}
	if ut.AwardedAt.IsZero() {
		ut.AwardedAt = time.Now()
	}
	return
}
