package Controllers_test

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/utils"
)

var testDBCounter int

// setupTestDB membuat sqlite in-memory terpisah per test.
func setupTestDB() *gorm.DB {
	utils.InitLogger()
	testDBCounter++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Staff{},
		&models.MenuItem{},
		&models.Settings{},
		&models.Order{},
		&models.ActivityLog{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

// asUser menaruh identitas pemanggil ke context, menggantikan auth middleware.
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}
