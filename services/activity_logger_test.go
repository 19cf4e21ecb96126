package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/utils"
)

func TestLogActivity(t *testing.T) {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:activitylog?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ActivityLog{}))

	LogActivity(db, "order_status_updated", `{"orderId":"o1"}`, "staff-1", "Kasir")

	var entry models.ActivityLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "order_status_updated", entry.Action)
	assert.Equal(t, "staff-1", entry.UserID)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestSnapshotFingerprintChangesOnStatus(t *testing.T) {
	a := []models.Order{{ID: "o1", Status: models.StatusPending}}
	b := []models.Order{{ID: "o1", Status: models.StatusReady}}

	assert.NotEqual(t, snapshotFingerprint(a), snapshotFingerprint(b))
	assert.Equal(t, snapshotFingerprint(a), snapshotFingerprint([]models.Order{{ID: "o1", Status: models.StatusPending}}))
}
