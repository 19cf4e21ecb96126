package billing

import (
	"github.com/smartcafe/ordering-app/models"
)

// Bill adalah hasil perhitungan subtotal/tax/total untuk satu daftar item.
// Nilai disimpan tanpa pembulatan; pembulatan dua digit hanya dilakukan saat
// presentasi supaya error pembulatan tidak terakumulasi.
type Bill struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Calculate menghitung subtotal = Σ price×quantity, tax = subtotal ×
// taxPercent / 100 dan total = subtotal + tax. Item yang malformed sudah
// dinormalkan di boundary (price default 0, quantity default 1) sehingga
// fungsi ini tidak pernah gagal. Dipakai oleh pembuatan order, laporan
// admin, tampilan staff dan generator bill; semuanya harus sepakat sampai
// ke sen untuk order yang sama.
func Calculate(items []models.LineItem, taxPercent float64) Bill {
	var subtotal float64
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := it.Price
		if price < 0 {
			price = 0
		}
		subtotal += price * float64(qty)
	}

	tax := subtotal * taxPercent / 100
	return Bill{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// CalculateForOrder memakai tarif pajak yang di-persist di order saat order
// dibuat, termasuk tarif 0%. Tarif settings yang berlaku sekarang tidak pernah
// dipakai ulang; bill order lama harus tetap cocok dengan snapshot-nya walau
// admin mengganti tarif belakangan.
func CalculateForOrder(order *models.Order) Bill {
	return Calculate(order.Items, order.TaxPercent)
}
