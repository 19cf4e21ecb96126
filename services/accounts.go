package services

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
)

// CreateStaffAccount membuat akun staff/admin dengan password ter-hash.
// Dipakai oleh seeding akun admin awal dan test.
func CreateStaffAccount(db *gorm.DB, email, name, password, role string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := models.Staff{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return db.Create(&staff).Error
}
