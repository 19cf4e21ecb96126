package orderstream

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/smartcafe/ordering-app/models"
)

// Filter adalah kombinasi kriteria list order staff. Kriteria kosong berarti
// tidak membatasi; kriteria yang terisi digabung dengan AND.
type Filter struct {
	Table  string
	Status string
	Search string
	From   time.Time
	To     time.Time
}

// IsZero -> true kalau tidak ada kriteria yang aktif.
func (f Filter) IsZero() bool {
	return f.Table == "" && f.Status == "" && f.Search == "" &&
		f.From.IsZero() && f.To.IsZero()
}

// Match memeriksa satu order terhadap semua kriteria aktif.
func (f Filter) Match(o *models.Order) bool {
	if f.Table != "" &&
		!strings.Contains(strings.ToLower(o.TableNumber), strings.ToLower(f.Table)) {
		return false
	}

	if f.Status != "" && !strings.EqualFold(o.Status, f.Status) {
		return false
	}

	if f.Search != "" && !matchesSearch(o, f.Search) {
		return false
	}

	// Rentang tanggal inklusif terhadap waktu order ditempatkan. Update
	// status belakangan tidak menggeser order keluar dari rentang.
	if !f.From.IsZero() || !f.To.IsZero() {
		t := o.Timestamp
		if t.IsZero() {
			t = o.CreatedAt
		}
		if !f.From.IsZero() && t.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && t.After(f.To) {
			return false
		}
	}

	return true
}

// Apply mengembalikan subset order yang lolos filter, urutan input dipertahankan.
func (f Filter) Apply(orders []models.Order) []models.Order {
	if f.IsZero() {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for i := range orders {
		if f.Match(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}

// matchesSearch mencari substring (case-insensitive) di id, nama customer,
// nomor meja, dan representasi JSON dari items, supaya pencarian nama menu
// ikut kena.
func matchesSearch(o *models.Order, term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(o.ID), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(o.CustomerName), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(o.TableNumber), needle) {
		return true
	}
	if raw, err := json.Marshal(o.Items); err == nil {
		if strings.Contains(strings.ToLower(string(raw)), needle) {
			return true
		}
	}
	return false
}
