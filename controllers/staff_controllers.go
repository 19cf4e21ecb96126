package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/services"
	"github.com/smartcafe/ordering-app/utils"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// GetAllStaff -> daftar akun untuk halaman staff management.
func (sc *StaffController) GetAllStaff(c *gin.Context) {
	var staff []models.Staff
	if err := sc.DB.Order("created_at ASC").Find(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of staff", staff)
}

// CreateStaff -> admin membuat akun baru; password di-hash dengan bcrypt.
func (sc *StaffController) CreateStaff(c *gin.Context) {
	type ReqBody struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role := body.Role
	if role == "" {
		role = models.RoleStaff
	}
	if !models.IsValidRole(role) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown role %q", role))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	staff := models.Staff{
		ID:        uuid.NewString(),
		Email:     body.Email,
		Name:      body.Name,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := sc.DB.Create(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email is already registered"))
		return
	}

	services.LogActivity(sc.DB, "staff_created",
		fmt.Sprintf(`{"email":%q,"role":%q}`, staff.Email, staff.Role),
		c.GetString("user_id"), c.GetString("role"))

	utils.RespondJSON(c, http.StatusCreated, "Staff account created", staff)
}

// DeleteStaff -> akun admin dilindungi dan tidak bisa dihapus lewat endpoint ini.
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	var staff models.Staff
	if err := sc.DB.First(&staff, "id = ?", c.Param("staff_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("staff account not found"))
		return
	}

	if staff.Role == models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("admin accounts cannot be deleted"))
		return
	}

	if err := sc.DB.Delete(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.LogActivity(sc.DB, "staff_deleted",
		fmt.Sprintf(`{"email":%q}`, staff.Email),
		c.GetString("user_id"), c.GetString("role"))

	utils.RespondJSON(c, http.StatusOK, "Staff account deleted", gin.H{"id": staff.ID})
}
