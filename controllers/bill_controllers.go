package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/billing"
	"github.com/smartcafe/ordering-app/middlewares"
	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/utils"
)

type BillController struct {
	DB *gorm.DB
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{DB: db}
}

// DownloadBill -> render bill PDF untuk satu order. PDF dirender penuh di
// memori sebelum satu byte pun dikirim; error render menghasilkan respons
// JSON biasa, bukan file setengah jadi.
func (bc *BillController) DownloadBill(c *gin.Context) {
	var order models.Order
	if err := bc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	settings := loadSettings(bc.DB)

	filename, data, err := billing.GenerateBillPDF(&order, settings, "Restaurant Bill")
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	middlewares.BillsGeneratedTotal.Inc()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
