package billing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcafe/ordering-app/models"
)

func TestGenerateBillPDF(t *testing.T) {
	order := &models.Order{
		ID:           "3f1c0b2a-9d8e-4f5a-b6c7-d8e9f0a1b2c3",
		TableNumber:  "T4",
		CustomerName: "Budi",
		Status:       models.StatusCompleted,
		TaxPercent:   5,
		Items: models.ItemList{
			{Name: "Paneer Tikka", Price: 299, Quantity: 1},
			{Name: "Butter Naan", Price: 199, Quantity: 2},
		},
	}
	settings := models.DefaultSettings()

	filename, data, err := GenerateBillPDF(order, settings, "Restaurant Bill")
	require.NoError(t, err)

	// Nomor bill di nama file = 8 karakter terakhir dari id order.
	expected := fmt.Sprintf("Bill_f0a1b2c3_T4_%s.pdf", time.Now().Format("2006-01-02"))
	assert.Equal(t, expected, filename)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateBillPDFEmptyOrder(t *testing.T) {
	order := &models.Order{ID: "short"}

	filename, data, err := GenerateBillPDF(order, models.Settings{}, "")
	require.NoError(t, err)

	// Meja kosong jadi N/A di nama file, items kosong tetap menghasilkan PDF.
	assert.Contains(t, filename, "Bill_short_N/A_")
	assert.NotEmpty(t, data)
}
