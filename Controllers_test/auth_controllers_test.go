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
	"github.com/smartcafe/ordering-app/middlewares"
	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/services"
)

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	authCtrl := controllers.NewAuthController(db)
	router.POST("/login", authCtrl.Login)
	auth := router.Group("/admin", middlewares.AuthMiddleware())
	auth.GET("/profile", authCtrl.Profile)
	auth.POST("/logout", authCtrl.Logout)
	return router
}

func loginAs(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestLoginAndProfile(t *testing.T) {
	db := setupTestDB()
	require.NoError(t, services.CreateStaffAccount(db, "kasir@example.com", "Kasir", "rahasia-123", models.RoleStaff))
	router := setupAuthRouter(db)

	token := loginAs(t, router, "kasir@example.com", "rahasia-123")

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.Staff `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "kasir@example.com", resp.Data.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB()
	require.NoError(t, services.CreateStaffAccount(db, "kasir@example.com", "Kasir", "rahasia-123", models.RoleStaff))
	router := setupAuthRouter(db)

	payload, _ := json.Marshal(map[string]string{"email": "kasir@example.com", "password": "salah"})
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := setupTestDB()
	require.NoError(t, services.CreateStaffAccount(db, "kasir2@example.com", "Kasir", "rahasia-123", models.RoleStaff))
	router := setupAuthRouter(db)

	token := loginAs(t, router, "kasir2@example.com", "rahasia-123")

	req, _ := http.NewRequest("POST", "/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Token yang sama tidak bisa dipakai lagi.
	req, _ = http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	db := setupTestDB()
	router := setupAuthRouter(db)

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
