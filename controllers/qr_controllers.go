package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartcafe/ordering-app/utils"
)

const qrServiceURL = "https://api.qrserver.com/v1/create-qr-code/"

type QRController struct{}

func NewQRController() *QRController {
	return &QRController{}
}

// tableMenuURL -> URL yang akan dibuka customer setelah scan QR meja.
func tableMenuURL(table string) string {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/menu?table=%s", base, url.QueryEscape(table))
}

// qrImageURL -> URL gambar QR 300x300 dari layanan eksternal.
func qrImageURL(target string) string {
	return fmt.Sprintf("%s?size=300x300&data=%s", qrServiceURL, url.QueryEscape(target))
}

// GetTableQR -> metadata QR untuk satu meja: link menu dan link gambar QR.
func (qc *QRController) GetTableQR(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		table = "T1"
	}

	target := tableMenuURL(table)
	utils.RespondJSON(c, http.StatusOK, "QR for table "+table, gin.H{
		"table":        table,
		"url":          target,
		"qr_image_url": qrImageURL(target),
	})
}

// DownloadTableQR -> proxy PNG QR supaya admin bisa mengunduh dan mencetak
// tanpa mengakses layanan eksternal dari browser.
func (qc *QRController) DownloadTableQR(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		table = "T1"
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(qrImageURL(tableMenuURL(table)))
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, errors.New("QR service is unreachable"))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.RespondError(c, http.StatusBadGateway,
			fmt.Errorf("QR service returned status %d", resp.StatusCode))
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "QR_"+table+".png"))
	c.Data(http.StatusOK, "image/png", data)
}
