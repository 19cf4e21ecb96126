package models

import "time"

// SettingsID -> settings adalah record tunggal global.
const SettingsID uint = 1

// Settings menyimpan konfigurasi restoran. Dibuat dengan default saat
// pertama kali diakses; update selalu partial merge, tidak pernah full
// overwrite, supaya field yang tidak disentuh tetap bertahan.
type Settings struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	RestaurantName string    `gorm:"type:varchar(255);not null" json:"restaurantName"`
	TaxPercent     float64   `gorm:"type:decimal(5,2);not null;default:5.00" json:"taxPercent"`
	LogoURL        string    `gorm:"type:varchar(512)" json:"logoURL"`
	Contact        string    `gorm:"type:varchar(255)" json:"contact"`
	Address        string    `gorm:"type:varchar(512)" json:"address"`
	Phone          string    `gorm:"type:varchar(50)" json:"phone"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DefaultSettings mengembalikan nilai awal settings singleton.
func DefaultSettings() Settings {
	return Settings{
		ID:             SettingsID,
		RestaurantName: "Smart Café",
		TaxPercent:     5,
	}
}
