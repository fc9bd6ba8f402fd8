package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carservice-api/models"
)

func TestInitialize_UnsupportedDriver(t *testing.T) {
	db, err := Initialize("oracle", "whatever")
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:a.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("file:a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("file:a.db?mode=rwc"))
	assert.Equal(t, "file:a.db?_pragma=busy_timeout(100)&_pragma=foreign_keys(1)", sqliteDSN("file:a.db?_pragma=busy_timeout(100)"))
}

func TestSeedData_Idempotent(t *testing.T) {
	db := NewTestDB(t)

	var count int64
	require.NoError(t, db.Model(&models.ServiceType{}).Count(&count).Error)
	assert.Equal(t, int64(len(DefaultServiceTypes())), count)

	require.NoError(t, SeedData(db))
	require.NoError(t, db.Model(&models.ServiceType{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)

	var oil models.ServiceType
	require.NoError(t, db.Where("name = ?", "Oil Change").First(&oil).Error)
	require.NotNil(t, oil.RecommendedIntervalKm)
	assert.Equal(t, 5000, *oil.RecommendedIntervalKm)
	assert.Equal(t, "Engine", oil.Category)
}

func TestMigrate_PendingKeyUnique(t *testing.T) {
	db := NewTestDB(t)

	first := models.Reminder{CarID: "car-1", ServiceTypeID: 1}
	require.NoError(t, db.Create(&first).Error)

	second := models.Reminder{CarID: "car-1", ServiceTypeID: 1}
	assert.Error(t, db.Create(&second).Error, "a second pending reminder for the same pair must be rejected")

	done := models.Reminder{CarID: "car-1", ServiceTypeID: 1, Status: models.ReminderStatusCompleted}
	assert.NoError(t, db.Create(&done).Error)
	other := models.Reminder{CarID: "car-1", ServiceTypeID: 1, Status: models.ReminderStatusDismissed}
	assert.NoError(t, db.Create(&other).Error)
}
