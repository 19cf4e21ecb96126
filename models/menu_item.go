package models

import "time"

// MenuItem adalah barang yang bisa dijual. Item dengan Available=false tidak
// pernah ditampilkan ke customer; admin tetap melihat semuanya.
type MenuItem struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Image       string    `gorm:"type:varchar(512)" json:"image"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}
