package seeds

import (
	"fmt"
	"testing"

	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
	"github.com/pushp314/runtrail-backend/internal/trophy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, db.AutoMigrate(&models.Trophy{}))
}

func TestSeedTrophies_CoversEveryKind(t *testing.T) {
	setupSeedDB(t)
	SeedTrophies()

	for _, kind := range models.AllTrophyKinds {
		var count int64
		database.DB.Model(&models.Trophy{}).Where("kind = ?", kind).Count(&count)
		assert.GreaterOrEqualf(t, count, int64(1), "no seeded trophy of kind %s", kind)
	}
}

func TestSeedTrophies_ConfigsParse(t *testing.T) {
	setupSeedDB(t)
	SeedTrophies()

	var trophies []models.Trophy
	require.NoError(t, database.DB.Find(&trophies).Error)
	require.NotEmpty(t, trophies)

	for _, tr := range trophies {
		_, err := trophy.ParseConfig(tr.Kind, []byte(tr.CriteriaConfig))
		assert.NoErrorf(t, err, "seeded trophy %s has an unparseable config", tr.Code)
	}
}

func TestSeedTrophies_Idempotent(t *testing.T) {
	setupSeedDB(t)
	SeedTrophies()

	var before int64
	database.DB.Model(&models.Trophy{}).Count(&before)

	SeedTrophies()

	var after int64
	database.DB.Model(&models.Trophy{}).Count(&after)
	assert.Equal(t, before, after)
}
