package trophy

import (
	"testing"
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_EvaluateForActivity_AwardsOnce(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)

	user := seedUser(t, db, "engine_user")
	trophy := makeTrophy(models.KindDistanceMilestone, "10k_single",
		`{"type":"DISTANCE_MILESTONE","distanceMeters":10000,"scope":"SINGLE_ACTIVITY"}`)
	require.NoError(t, db.Create(&trophy).Error)

	activity := seedActivity(t, db, user.ID, time.Now(), withDistance(12000))

	outcomes, err := engine.EvaluateForActivity(user, &activity)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusAwarded, outcomes[0].Status)
	assert.Equal(t, "10k_single", outcomes[0].TrophyCode)

	// Earned trophies drop out of the pending set entirely
	outcomes, err = engine.EvaluateForActivity(user, &activity)
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	var count int64
	db.Model(&models.UserTrophy{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEngine_OneBadTrophyDoesNotBlockOthers(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)

	user := seedUser(t, db, "engine_user2")

	// Unknown specialType fails at evaluation; the distance trophy must
	// still be processed and awarded
	bad := makeTrophy(models.KindSpecial, "bad_special",
		`{"type":"SPECIAL","specialType":"SOLAR_FLARE_RUN"}`)
	bad.DisplayOrder = 1
	good := makeTrophy(models.KindDistanceMilestone, "5k_single",
		`{"type":"DISTANCE_MILESTONE","distanceMeters":5000,"scope":"SINGLE_ACTIVITY"}`)
	good.DisplayOrder = 2
	require.NoError(t, db.Create(&bad).Error)
	require.NoError(t, db.Create(&good).Error)

	activity := seedActivity(t, db, user.ID, time.Now(), withDistance(6000))

	outcomes, err := engine.EvaluateForActivity(user, &activity)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, "bad_special", outcomes[0].TrophyCode)
	assert.Error(t, outcomes[0].Err)
	assert.Equal(t, StatusNotEligible, outcomes[0].Status)

	assert.Equal(t, "5k_single", outcomes[1].TrophyCode)
	assert.Equal(t, StatusAwarded, outcomes[1].Status)
}

func TestEngine_UnsupportedKindIsReported(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)

	user := seedUser(t, db, "engine_user3")

	// A kind nobody evaluates, e.g. from a bad manual insert
	rogue := models.Trophy{
		ID:             "trophy-rogue",
		Code:           "rogue",
		Name:           "rogue",
		Kind:           models.TrophyKind("TELEPORT"),
		IsActive:       true,
		CriteriaConfig: `{"type":"TELEPORT"}`,
	}
	require.NoError(t, db.Create(&rogue).Error)

	outcomes, err := engine.RecheckUser(user)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	var unsupported *UnsupportedKindError
	assert.ErrorAs(t, outcomes[0].Err, &unsupported)
}

func TestEngine_RecheckAwardsFromPastActivities(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)

	user := seedUser(t, db, "engine_user4")
	trophy := makeTrophy(models.KindDistanceMilestone, "15k_total",
		`{"type":"DISTANCE_MILESTONE","distanceMeters":15000,"scope":"TOTAL"}`)
	require.NoError(t, db.Create(&trophy).Error)

	now := time.Now()
	seedActivity(t, db, user.ID, now.Add(-48*time.Hour), withDistance(8000))
	seedActivity(t, db, user.ID, now.Add(-24*time.Hour), withDistance(9000))

	outcomes, err := engine.RecheckUser(user)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusAwarded, outcomes[0].Status)
}

func TestEngine_ProgressFor(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)

	user := seedUser(t, db, "engine_user5")
	trophy := makeTrophy(models.KindDistanceMilestone, "20k_total",
		`{"type":"DISTANCE_MILESTONE","distanceMeters":20000,"scope":"TOTAL"}`)
	require.NoError(t, db.Create(&trophy).Error)

	seedActivity(t, db, user.ID, time.Now(), withDistance(5000))

	progress, err := engine.ProgressFor(user, trophy.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(5000), progress.CurrentValue)
	assert.Equal(t, float64(20000), progress.TargetValue)
	assert.Equal(t, 25, progress.Percentage)
	assert.False(t, progress.IsComplete)
}

func TestEngine_ProgressForPropagatesStoreErrors(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)

	user := seedUser(t, db, "engine_user7")
	trophy := makeTrophy(models.KindDistanceMilestone, "30k_total",
		`{"type":"DISTANCE_MILESTONE","distanceMeters":30000,"scope":"TOTAL"}`)
	require.NoError(t, db.Create(&trophy).Error)

	// A failed earned-check must surface, not read as "not yet earned"
	require.NoError(t, db.Migrator().DropTable(&models.UserTrophy{}))

	_, err := engine.ProgressFor(user, trophy.ID)
	assert.Error(t, err)
}

func TestEngine_ProgressForUnknownTrophy(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := seedUser(t, db, "engine_user6")

	_, err := engine.ProgressFor(user, "no-such-trophy")
	assert.Error(t, err)
}
