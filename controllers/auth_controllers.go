package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/services"
	"github.com/smartcafe/ordering-app/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login -> menukar email+password dengan JWT.
func (ac *AuthController) Login(c *gin.Context) {
	type ReqBody struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	if err := ac.DB.Where("email = ?", body.Email).First(&staff).Error; err != nil {
		// Pesan sengaja tidak membedakan email salah vs password salah.
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(body.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.LogActivity(ac.DB, "staff_login",
		fmt.Sprintf(`{"email":%q}`, staff.Email), staff.ID, staff.Name)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":    staff.ID,
			"name":  staff.Name,
			"email": staff.Email,
			"role":  staff.Role,
		},
	})
}

// Logout -> token dimasukkan ke blacklist sampai expiry-nya lewat.
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no token to revoke"))
		return
	}

	utils.BlacklistToken(token)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// Profile -> data akun yang sedang login.
func (ac *AuthController) Profile(c *gin.Context) {
	var staff models.Staff
	if err := ac.DB.First(&staff, "id = ?", c.GetString("user_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("account not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile", staff)
}

// ForgotPassword -> kirim email berisi reset token. Respons untuk email yang
// tidak terdaftar tetap 200 generik, tapi kegagalan pengiriman SMTP untuk
// akun yang ada dilaporkan ke pemanggil supaya tidak menunggu email yang
// tidak pernah datang.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	type ReqBody struct {
		Email string `json:"email" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	if err := ac.DB.Where("email = ?", body.Email).First(&staff).Error; err == nil {
		token, err := utils.GenerateResetToken(staff.ID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := services.SendPasswordResetEmail(staff.Email, staff.Name, token); err != nil {
			utils.ErrorLogger.Printf("Failed to send reset email to %s: %v", staff.Email, err)
			utils.RespondError(c, http.StatusBadGateway, errors.New("failed to send reset email"))
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "If the account exists, a reset email has been sent", nil)
}

// ResetPassword -> tukar reset token dengan password baru.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	type ReqBody struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	claims, err := utils.ParseResetToken(body.Token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	result := ac.DB.Model(&models.Staff{}).
		Where("id = ?", claims.UserID).
		Update("password", string(hashed))
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("account not found"))
		return
	}

	services.LogActivity(ac.DB, "password_reset", "", claims.UserID, "")

	utils.RespondJSON(c, http.StatusOK, "Password updated", nil)
}
