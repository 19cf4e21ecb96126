package models

import "time"

// ActivityLog adalah audit record append-only. Penulisan bersifat best-effort
// dan tidak boleh memblokir aksi utamanya; pembacaan hanya lewat endpoint
// activity log admin.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	UserID    string    `gorm:"type:varchar(36)" json:"userId"`
	User      string    `gorm:"type:varchar(255)" json:"user"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
