package models

import "time"

// Role staff yang dikenal. Akun admin tidak bisa dihapus lewat management UI.
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

type Staff struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

// IsValidRole memeriksa role yang diizinkan untuk akun staff.
func IsValidRole(role string) bool {
	return role == RoleStaff || role == RoleAdmin
}
