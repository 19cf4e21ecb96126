package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/realtime"
	"github.com/smartcafe/ordering-app/services"
	"github.com/smartcafe/ordering-app/utils"
)

type MenuController struct {
	DB      *gorm.DB
	Storage services.ImageStorage
}

func NewMenuController(db *gorm.DB, storage services.ImageStorage) *MenuController {
	return &MenuController{DB: db, Storage: storage}
}

// GetAvailableMenu -> endpoint publik untuk customer; hanya item available.
func (mc *MenuController) GetAvailableMenu(c *gin.Context) {
	var items []models.MenuItem
	query := mc.DB.Where("available = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", items)
}

// GetAllMenuItems -> view admin, termasuk item yang disembunyikan.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All menu items", items)
}

// CreateMenuItem -> admin menambah item menu.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	type ReqBody struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		Available   *bool   `json:"available"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("price cannot be negative"))
		return
	}

	available := true
	if body.Available != nil {
		available = *body.Available
	}

	item := models.MenuItem{
		ID:          uuid.NewString(),
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		Image:       body.Image,
		Available:   available,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.LogActivity(mc.DB, "menu_item_created",
		fmt.Sprintf(`{"id":%q,"name":%q}`, item.ID, item.Name),
		c.GetString("user_id"), c.GetString("role"))
	realtime.BroadcastMenuUpdate(item)

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem -> partial update; hanya field yang dikirim yang berubah.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, "id = ?", c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	type ReqBody struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		Image       *string  `json:"image"`
		Available   *bool    `json:"available"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		if *body.Name == "" {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("name cannot be empty"))
			return
		}
		item.Name = *body.Name
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("price cannot be negative"))
			return
		}
		item.Price = *body.Price
	}
	if body.Category != nil {
		item.Category = *body.Category
	}
	if body.Image != nil {
		item.Image = *body.Image
	}
	if body.Available != nil {
		item.Available = *body.Available
	}
	item.UpdatedAt = time.Now()

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMenuUpdate(item)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> order lama tetap utuh karena menyimpan snapshot nama dan
// harga, bukan referensi ke menu.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, "id = ?", c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.LogActivity(mc.DB, "menu_item_deleted",
		fmt.Sprintf(`{"id":%q,"name":%q}`, item.ID, item.Name),
		c.GetString("user_id"), c.GetString("role"))
	realtime.BroadcastMenuUpdate(item)

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}

// UploadMenuImage -> upload gambar ke object storage, lalu simpan URL-nya di
// item menu.
func (mc *MenuController) UploadMenuImage(c *gin.Context) {
	if mc.Storage == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("image storage is not configured"))
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, "id = ?", c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("image file is required"))
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unsupported image format: %s", contentType))
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("menu/%s_%d%s", item.ID, time.Now().Unix(), ext)

	url, err := mc.Storage.UploadImage(c.Request.Context(), objectName, src, file.Size, contentType)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	item.Image = url
	item.UpdatedAt = time.Now()
	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMenuUpdate(item)
	utils.RespondJSON(c, http.StatusOK, "Menu image uploaded", gin.H{"image": url})
}
