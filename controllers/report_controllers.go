package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// ExportSalesCSV -> ekspor order sebagai CSV untuk admin. Default hanya order
// Completed; status lain bisa diminta lewat query. Nominal diambil dari
// snapshot yang di-persist di order, jadi laporan tidak berubah walau tarif
// pajak diganti belakangan.
func (rc *ReportController) ExportSalesCSV(c *gin.Context) {
	status := models.StatusCompleted
	if s := c.Query("status"); s != "" {
		normalized, ok := models.NormalizeStatus(s)
		if !ok {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", s))
			return
		}
		status = normalized
	}

	query := rc.DB.Where("status = ?", status)

	const dateLayout = "2006-01-02"
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid from date %q", from))
			return
		}
		query = query.Where("updated_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid to date %q", to))
			return
		}
		query = query.Where("updated_at < ?", t.Add(24*time.Hour))
	}

	var orders []models.Order
	if err := query.Order("updated_at ASC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("sales_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv")

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"order_id", "table", "customer", "status", "updated_at", "subtotal", "tax", "tax_percent", "total"})
	for i := range orders {
		o := &orders[i]
		_ = w.Write([]string{
			o.ID,
			o.TableNumber,
			o.CustomerName,
			o.Status,
			o.UpdatedAt.Format(time.RFC3339),
			utils.FormatAmount(o.Subtotal),
			utils.FormatAmount(o.Tax),
			utils.FormatAmount(o.TaxPercent),
			utils.FormatAmount(o.Total),
		})
	}
	w.Flush()
}
