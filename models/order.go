package models

import (
	"time"
)

// Order adalah satu transaksi customer yang terikat ke satu meja.
// Subtotal/Tax/Total adalah snapshot yang dihitung saat order dibuat dengan
// TaxPercent yang berlaku saat itu; perubahan tarif pajak berikutnya tidak
// menghitung ulang order lama.
type Order struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TableNumber   string    `gorm:"type:varchar(20);index" json:"tableNumber"`
	CustomerName  string    `gorm:"type:varchar(255)" json:"customerName"`
	CustomerPhone string    `gorm:"type:varchar(50)" json:"customerPhone"`
	CustomerEmail string    `gorm:"type:varchar(255)" json:"customerEmail"`
	Items         ItemList  `gorm:"type:text" json:"items"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Subtotal      float64   `gorm:"type:decimal(12,2);not null;default:0.00" json:"subtotal"`
	Tax           float64   `gorm:"type:decimal(12,2);not null;default:0.00" json:"tax"`
	Total         float64   `gorm:"type:decimal(12,2);not null;default:0.00" json:"total"`
	// TaxPercent sengaja tanpa default di kolom: gorm melewatkan field
	// bernilai nol saat insert kalau ada default tag, dan tarif 0% harus
	// ikut tersimpan apa adanya.
	TaxPercent    float64   `gorm:"type:decimal(5,2);not null" json:"taxPercent"`
	Timestamp     time.Time `gorm:"not null" json:"timestamp"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

// EffectiveTime mengembalikan waktu terbaru yang diketahui untuk order ini:
// UpdatedAt, lalu Timestamp, lalu CreatedAt, lalu epoch nol.
func (o *Order) EffectiveTime() time.Time {
	if !o.UpdatedAt.IsZero() {
		return o.UpdatedAt
	}
	if !o.Timestamp.IsZero() {
		return o.Timestamp
	}
	if !o.CreatedAt.IsZero() {
		return o.CreatedAt
	}
	return time.Time{}
}

// ShortID mengembalikan 8 karakter terakhir dari ID untuk nomor bill.
func (o *Order) ShortID() string {
	if len(o.ID) <= 8 {
		return o.ID
	}
	return o.ID[len(o.ID)-8:]
}
