package trophy

import (
	"sync"
	"testing"
	"time"

	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrar_AwardIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	registrar := NewRegistrar(db)

	user := seedUser(t, db, "winner")
	trophy := makeTrophy(models.KindSpecial, "first_steps",
		`{"type":"SPECIAL","specialType":"FIRST_ACTIVITY"}`)
	require.NoError(t, db.Create(&trophy).Error)

	activity := seedActivity(t, db, user.ID, time.Now())

	status, err := registrar.TryAward(user, trophy, &activity, map[string]interface{}{"kind": "SPECIAL"})
	require.NoError(t, err)
	assert.Equal(t, StatusAwarded, status)

	status, err = registrar.TryAward(user, trophy, &activity, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyAwarded, status)

	var count int64
	db.Model(&models.UserTrophy{}).
		Where("user_id = ? AND trophy_id = ?", user.ID, trophy.ID).
		Count(&count)
	assert.Equal(t, int64(1), count, "exactly one persisted award")
}

func TestRegistrar_ConcurrentAwardsPersistOnce(t *testing.T) {
	db := setupTestDB(t)
	registrar := NewRegistrar(db)

	user := seedUser(t, db, "racer")
	trophy := makeTrophy(models.KindDistanceMilestone, "10k_single",
		`{"type":"DISTANCE_MILESTONE","distanceMeters":10000,"scope":"SINGLE_ACTIVITY"}`)
	require.NoError(t, db.Create(&trophy).Error)

	const attempts = 8
	statuses := make([]AwardStatus, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i], errs[i] = registrar.TryAward(user, trophy, nil, nil)
		}(i)
	}
	wg.Wait()

	awarded := 0
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		if statuses[i] == StatusAwarded {
			awarded++
		} else {
			assert.Equal(t, StatusAlreadyAwarded, statuses[i])
		}
	}
	assert.Equal(t, 1, awarded, "exactly one caller wins the award")

	var count int64
	db.Model(&models.UserTrophy{}).
		Where("user_id = ? AND trophy_id = ?", user.ID, trophy.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegistrar_DifferentTrophiesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	registrar := NewRegistrar(db)

	user := seedUser(t, db, "collector")
	t1 := makeTrophy(models.KindSpecial, "one", `{"type":"SPECIAL","specialType":"FIRST_ACTIVITY"}`)
	t2 := makeTrophy(models.KindSpecial, "two", `{"type":"SPECIAL","specialType":"BIRTHDAY_RUN"}`)
	require.NoError(t, db.Create(&t1).Error)
	require.NoError(t, db.Create(&t2).Error)

	status, err := registrar.TryAward(user, t1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusAwarded, status)

	status, err = registrar.TryAward(user, t2, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusAwarded, status)
}
