package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/billing"
	"github.com/smartcafe/ordering-app/middlewares"
	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/orderstream"
	"github.com/smartcafe/ordering-app/realtime"
	"github.com/smartcafe/ordering-app/services"
	"github.com/smartcafe/ordering-app/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder -> endpoint publik untuk customer menaruh order dari menu.
// Subtotal/tax/total dihitung dan disimpan di sini dengan tarif pajak yang
// berlaku sekarang; perubahan tarif berikutnya tidak menyentuh order ini.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ReqBody struct {
		TableNumber   string          `json:"tableNumber"`
		CustomerName  string          `json:"customerName"`
		CustomerPhone string          `json:"customerPhone"`
		CustomerEmail string          `json:"customerEmail"`
		Items         models.ItemList `json:"items"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.CustomerName == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("customer name is required"))
		return
	}
	if len(body.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order must contain at least one item"))
		return
	}

	table := body.TableNumber
	if table == "" {
		table = "T1"
	}

	settings := loadSettings(oc.DB)
	bill := billing.Calculate(body.Items, settings.TaxPercent)

	now := time.Now()
	order := models.Order{
		ID:            uuid.NewString(),
		TableNumber:   table,
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		CustomerEmail: body.CustomerEmail,
		Items:         body.Items,
		Status:        models.StatusPending,
		Subtotal:      bill.Subtotal,
		Tax:           bill.Tax,
		Total:         bill.Total,
		TaxPercent:    settings.TaxPercent,
		Timestamp:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	middlewares.OrdersCreatedTotal.Inc()
	realtime.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> view staff/admin: order aktif dulu lalu completed, terbaru
// di atas, dengan filter opsional dari query string.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filter, err := parseOrderFilter(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	projected := orderstream.Project(filter.Apply(orders))
	utils.RespondJSON(c, http.StatusOK, "List of orders", projected)
}

// parseOrderFilter membaca kriteria dari query: table, status, search, from,
// to (yyyy-mm-dd). Batas "to" digeser ke akhir hari supaya rentang inklusif.
func parseOrderFilter(c *gin.Context) (orderstream.Filter, error) {
	filter := orderstream.Filter{
		Table:  c.Query("table"),
		Search: c.Query("search"),
	}

	if status := c.Query("status"); status != "" {
		normalized, ok := models.NormalizeStatus(status)
		if !ok {
			return filter, fmt.Errorf("unknown status %q", status)
		}
		filter.Status = normalized
	}

	const dateLayout = "2006-01-02"
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return filter, fmt.Errorf("invalid from date %q", from)
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return filter, fmt.Errorf("invalid to date %q", to)
		}
		filter.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	return filter, nil
}

// GetOrdersForTable -> view customer: hanya order meja sendiri, tanpa order
// yang sudah completed/cancelled. Default meja T1 mengikuti perilaku QR.
func (oc *OrderController) GetOrdersForTable(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		table = "T1"
	}

	var orders []models.Order
	if err := oc.DB.Where("table_number = ?", table).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Orders for table "+table, orderstream.ProjectForTable(orders, table))
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> staff/admin memindahkan order antar status. Order
// terminal terkunci; selain itu semua perpindahan (termasuk mundur) sah.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	newStatus, ok := models.NormalizeStatus(body.Status)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", body.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	if !models.CanTransition(order.Status, newStatus) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("order with status %s can no longer be updated", order.Status))
		return
	}

	prior := order.Status
	order.Status = newStatus
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.LogActivity(oc.DB, "order_status_updated",
		fmt.Sprintf(`{"orderId":%q,"from":%q,"to":%q}`, order.ID, prior, newStatus),
		c.GetString("user_id"), c.GetString("role"))
	realtime.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// CancelOrder -> shortcut memindahkan order non-terminal ke Cancelled.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	if !models.CanTransition(order.Status, models.StatusCancelled) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("order with status %s can no longer be cancelled", order.Status))
		return
	}

	prior := order.Status
	order.Status = models.StatusCancelled
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.LogActivity(oc.DB, "order_cancelled",
		fmt.Sprintf(`{"orderId":%q,"from":%q}`, order.ID, prior),
		c.GetString("user_id"), c.GetString("role"))
	realtime.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// DeleteOrder -> hanya order terminal (Completed/Cancelled) yang boleh dihapus.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	if !models.CanDelete(order.Status) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("only completed or cancelled orders can be deleted"))
		return
	}

	if err := oc.DB.Delete(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.LogActivity(oc.DB, "order_deleted",
		fmt.Sprintf(`{"orderId":%q,"status":%q}`, order.ID, order.Status),
		c.GetString("user_id"), c.GetString("role"))

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": order.ID})
}

// BulkDeleteOrders -> menghapus beberapa order sekaligus. Order non-terminal
// di daftar dilewati diam-diam; sisanya dihapus satu per satu tanpa rollback
// dan jumlah yang benar-benar terhapus dilaporkan apa adanya.
func (oc *OrderController) BulkDeleteOrders(c *gin.Context) {
	type ReqBody struct {
		IDs []string `json:"ids" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(body.IDs) == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("no order ids given"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Where("id IN ?", body.IDs).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	deletable := 0
	deleted := 0
	for i := range orders {
		if !models.CanDelete(orders[i].Status) {
			continue
		}
		deletable++
		if err := oc.DB.Delete(&orders[i]).Error; err != nil {
			utils.ErrorLogger.Printf("Bulk delete failed for order %s: %v", orders[i].ID, err)
			continue
		}
		deleted++
	}

	services.LogActivity(oc.DB, "orders_bulk_deleted",
		fmt.Sprintf(`{"requested":%d,"deletable":%d,"deleted":%d}`, len(body.IDs), deletable, deleted),
		c.GetString("user_id"), c.GetString("role"))

	utils.RespondJSON(c, http.StatusOK,
		fmt.Sprintf("%d orders deleted", deleted),
		gin.H{"requested": len(body.IDs), "deletable": deletable, "deleted": deleted})
}

// loadSettings mengambil settings singleton, membuatnya dengan default saat
// pertama kali dipakai.
func loadSettings(db *gorm.DB) models.Settings {
	settings := models.DefaultSettings()
	db.Where(models.Settings{ID: models.SettingsID}).FirstOrCreate(&settings)
	return settings
}
