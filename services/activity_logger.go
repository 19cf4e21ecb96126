package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/utils"
)

// LogActivity menulis satu audit record secara best-effort. Kegagalan hanya
// dicatat ke error log dan tidak pernah menggagalkan aksi yang diaudit.
func LogActivity(db *gorm.DB, action, details, userID, userName string) {
	entry := models.ActivityLog{
		Action:    action,
		Details:   details,
		UserID:    userID,
		User:      userName,
		Timestamp: time.Now(),
	}
	if err := db.Create(&entry).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to write activity log (%s): %v", action, err)
	}
}
