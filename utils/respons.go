package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// JSONResponse adalah envelope standar semua endpoint JSON.
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// FormatAmount membulatkan ke dua digit hanya untuk presentasi; nilai yang
// disimpan dan dihitung tetap full precision.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
