package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/realtime"
	"github.com/smartcafe/ordering-app/services"
	"github.com/smartcafe/ordering-app/utils"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

// GetSettings -> settings singleton; dibuat dengan default saat akses pertama.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Settings", loadSettings(sc.DB))
}

// UpdateSettings -> partial merge: hanya field yang dikirim yang berubah,
// field lain tetap seperti sebelumnya. Tidak pernah full overwrite supaya
// dua admin yang menyimpan bergantian tidak saling menghapus isian.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	type ReqBody struct {
		RestaurantName *string  `json:"restaurantName"`
		TaxPercent     *float64 `json:"taxPercent"`
		LogoURL        *string  `json:"logoURL"`
		Contact        *string  `json:"contact"`
		Address        *string  `json:"address"`
		Phone          *string  `json:"phone"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.RestaurantName != nil && *body.RestaurantName == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("restaurant name cannot be empty"))
		return
	}
	if body.TaxPercent != nil && *body.TaxPercent < 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("tax percent cannot be negative"))
		return
	}

	settings := loadSettings(sc.DB)
	if body.RestaurantName != nil {
		settings.RestaurantName = *body.RestaurantName
	}
	if body.TaxPercent != nil {
		settings.TaxPercent = *body.TaxPercent
	}
	if body.LogoURL != nil {
		settings.LogoURL = *body.LogoURL
	}
	if body.Contact != nil {
		settings.Contact = *body.Contact
	}
	if body.Address != nil {
		settings.Address = *body.Address
	}
	if body.Phone != nil {
		settings.Phone = *body.Phone
	}
	settings.UpdatedAt = time.Now()

	if err := sc.DB.Save(&settings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.LogActivity(sc.DB, "settings_updated",
		fmt.Sprintf(`{"restaurantName":%q,"taxPercent":%g}`, settings.RestaurantName, settings.TaxPercent),
		c.GetString("user_id"), c.GetString("role"))

	// Client yang sedang membuka form settings tidak menerima broadcast ini.
	realtime.BroadcastSettingsUpdate(settings)

	utils.RespondJSON(c, http.StatusOK, "Settings saved", settings)
}
