package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/controllers"
	"github.com/smartcafe/ordering-app/models"
)

func setupStaffRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	staffCtrl := controllers.NewStaffController(db)
	admin := router.Group("/admin", asUser("admin-1", models.RoleAdmin))
	admin.GET("/staff", staffCtrl.GetAllStaff)
	admin.POST("/staff", staffCtrl.CreateStaff)
	admin.DELETE("/staff/:staff_id", staffCtrl.DeleteStaff)
	return router
}

func createStaff(t *testing.T, router *gin.Engine, email, role string) models.Staff {
	t.Helper()
	payload, _ := json.Marshal(map[string]interface{}{
		"email":    email,
		"name":     "Test User",
		"password": "rahasia-123",
		"role":     role,
	})
	req, _ := http.NewRequest("POST", "/admin/staff", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Staff `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestCreateStaffHashesPassword(t *testing.T) {
	db := setupTestDB()
	router := setupStaffRouter(db)

	created := createStaff(t, router, "siti@example.com", models.RoleStaff)

	var stored models.Staff
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.NotEqual(t, "rahasia-123", stored.Password)
	assert.Equal(t, models.RoleStaff, stored.Role)

	// Password tidak pernah ikut di respons JSON.
	raw, _ := json.Marshal(created)
	assert.NotContains(t, string(raw), "rahasia")
}

func TestCreateStaffRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB()
	router := setupStaffRouter(db)

	createStaff(t, router, "siti@example.com", models.RoleStaff)

	payload, _ := json.Marshal(map[string]interface{}{
		"email":    "siti@example.com",
		"name":     "Duplikat",
		"password": "rahasia-123",
	})
	req, _ := http.NewRequest("POST", "/admin/staff", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteStaffProtectsAdminAccounts(t *testing.T) {
	db := setupTestDB()
	router := setupStaffRouter(db)

	staff := createStaff(t, router, "kasir@example.com", models.RoleStaff)
	admin := createStaff(t, router, "boss@example.com", models.RoleAdmin)

	// Akun admin dilindungi.
	req, _ := http.NewRequest("DELETE", "/admin/staff/"+admin.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Akun staff biasa bisa dihapus.
	req, _ = http.NewRequest("DELETE", "/admin/staff/"+staff.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Staff{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
