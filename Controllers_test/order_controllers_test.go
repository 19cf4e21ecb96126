package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/billing"
	"github.com/smartcafe/ordering-app/controllers"
	"github.com/smartcafe/ordering-app/models"
)

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/tables/orders", orderCtrl.GetOrdersForTable)
	staff := router.Group("/admin", asUser("staff-1", models.RoleStaff))
	staff.GET("/orders", orderCtrl.GetAllOrders)
	staff.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	staff.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	staff.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	staff.POST("/orders/bulk-delete", orderCtrl.BulkDeleteOrders)
	return router
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createTestOrder(t *testing.T, router *gin.Engine, table string) models.Order {
	t.Helper()
	w := postJSON(router, "/orders", map[string]interface{}{
		"tableNumber":  table,
		"customerName": "Budi",
		"items": []map[string]interface{}{
			{"name": "Paneer Tikka", "price": 299, "quantity": 1},
			{"name": "Butter Naan", "price": 199, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestCreateOrderPersistsBillSnapshot(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	order := createTestOrder(t, router, "T4")

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	// Tarif default settings 5%.
	assert.InDelta(t, 697.0, order.Subtotal, 1e-9)
	assert.InDelta(t, 34.85, order.Tax, 1e-9)
	assert.InDelta(t, 731.85, order.Total, 1e-9)
	assert.InDelta(t, 5.0, order.TaxPercent, 1e-9)
}

func TestCreateOrderKeepsZeroTaxRate(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	// Restoran dengan pajak 0%.
	settings := models.DefaultSettings()
	require.NoError(t, db.Create(&settings).Error)
	require.NoError(t, db.Model(&models.Settings{}).Where("id = ?", models.SettingsID).
		Update("tax_percent", 0).Error)

	order := createTestOrder(t, router, "T9")
	assert.Zero(t, order.Tax)
	assert.Zero(t, order.TaxPercent)
	assert.InDelta(t, 697.0, order.Total, 1e-9)

	// Tarif dinaikkan setelah order dibuat; bill order lama tidak ikut naik.
	require.NoError(t, db.Model(&models.Settings{}).Where("id = ?", models.SettingsID).
		Update("tax_percent", 10).Error)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Zero(t, stored.TaxPercent)

	bill := billing.CalculateForOrder(&stored)
	assert.Zero(t, bill.Tax)
	assert.InDelta(t, 697.0, bill.Total, 1e-9)
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	// Tanpa nama customer.
	w := postJSON(router, "/orders", map[string]interface{}{
		"tableNumber": "T1",
		"items":       []map[string]interface{}{{"name": "Kopi", "price": 30}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Tanpa item.
	w = postJSON(router, "/orders", map[string]interface{}{
		"tableNumber":  "T1",
		"customerName": "Budi",
		"items":        []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllOrdersProjectionAndFilter(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	first := createTestOrder(t, router, "T1")
	second := createTestOrder(t, router, "T2")

	// Order pertama diselesaikan; harus pindah ke bawah daftar.
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", first.ID).
		Updates(map[string]interface{}{"status": models.StatusCompleted, "updated_at": time.Now().Add(time.Minute)}).Error)

	req, _ := http.NewRequest("GET", "/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, second.ID, resp.Data[0].ID)
	assert.Equal(t, first.ID, resp.Data[1].ID)

	// Filter status.
	req, _ = http.NewRequest("GET", "/admin/orders?status=completed", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, first.ID, resp.Data[0].ID)

	// Status tidak dikenal ditolak.
	req, _ = http.NewRequest("GET", "/admin/orders?status=delivered", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrdersForTableHidesFinishedOrders(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	mine := createTestOrder(t, router, "T5")
	done := createTestOrder(t, router, "T5")
	createTestOrder(t, router, "T6")

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", done.ID).
		Update("status", models.StatusCompleted).Error)

	req, _ := http.NewRequest("GET", "/tables/orders?table=T5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, mine.ID, resp.Data[0].ID)
}

func TestUpdateOrderStatusLifecycle(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	order := createTestOrder(t, router, "T2")

	// Pending -> Preparing.
	w := patchJSON(router, "/admin/orders/"+order.ID+"/status", map[string]string{"status": "Preparing"})
	require.Equal(t, http.StatusOK, w.Code)

	// Mundur Preparing -> Pending juga sah.
	w = patchJSON(router, "/admin/orders/"+order.ID+"/status", map[string]string{"status": "Pending"})
	require.Equal(t, http.StatusOK, w.Code)

	// Status tidak dikenal ditolak.
	w = patchJSON(router, "/admin/orders/"+order.ID+"/status", map[string]string{"status": "Delivered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Loncat ke Completed diperbolehkan.
	w = patchJSON(router, "/admin/orders/"+order.ID+"/status", map[string]string{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)

	// Order terminal terkunci.
	w = patchJSON(router, "/admin/orders/"+order.ID+"/status", map[string]string{"status": "Pending"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Perubahan status masuk audit trail.
	var count int64
	db.Model(&models.ActivityLog{}).Where("action = ?", "order_status_updated").Count(&count)
	assert.EqualValues(t, 3, count)
}

func patchJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("PATCH", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCancelOrder(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	order := createTestOrder(t, router, "T3")

	w := postJSON(router, "/admin/orders/"+order.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusCancelled, stored.Status)

	// Sudah terminal, cancel kedua kali ditolak.
	w = postJSON(router, "/admin/orders/"+order.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteOrderOnlyWhenTerminal(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	order := createTestOrder(t, router, "T1")

	req, _ := http.NewRequest("DELETE", "/admin/orders/"+order.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.StatusCancelled).Error)

	req, _ = http.NewRequest("DELETE", "/admin/orders/"+order.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
	assert.Zero(t, count)
}

func TestBulkDeleteSkipsActiveOrders(t *testing.T) {
	db := setupTestDB()
	router := setupOrderRouter(db)

	done := createTestOrder(t, router, "T1")
	cancelled := createTestOrder(t, router, "T2")
	active := createTestOrder(t, router, "T3")
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", done.ID).
		Update("status", models.StatusCompleted).Error)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", cancelled.ID).
		Update("status", models.StatusCancelled).Error)

	// Order aktif di daftar dilewati diam-diam, yang terminal terhapus.
	w := postJSON(router, "/admin/orders/bulk-delete", map[string]interface{}{
		"ids": []string{done.ID, cancelled.ID, active.ID},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data["requested"])
	assert.Equal(t, 2, resp.Data["deletable"])
	assert.Equal(t, 2, resp.Data["deleted"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var remaining models.Order
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, active.ID, remaining.ID)
}
