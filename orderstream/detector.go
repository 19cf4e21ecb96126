package orderstream

import (
	"fmt"

	"github.com/smartcafe/ordering-app/models"
)

// Detector mendeteksi kedatangan order baru di antara dua snapshot berurutan.
// Notifikasi hanya muncul kalau snapshot sebelumnya berisi order: snapshot
// pertama setelah start tidak pernah notifikasi (order yang sudah ada bukan
// order "baru"), dan restoran yang mulai dari kosong juga diam untuk order
// pertamanya. Satu kali Observe menghasilkan paling banyak satu notifikasi
// walaupun ada beberapa order baru sekaligus.
//
// Detector tidak thread-safe; pemanggilnya (order feed) memanggil Observe
// dari satu goroutine polling.
type Detector struct {
	seen      map[string]struct{}
	hadOrders bool
}

func NewDetector() *Detector {
	return &Detector{seen: make(map[string]struct{})}
}

// Notice adalah notifikasi staff yang dihasilkan dari satu snapshot.
type Notice struct {
	OrderID string `json:"orderId"`
	Table   string `json:"table"`
	Message string `json:"message"`
}

// Observe memproses satu snapshot dan mengembalikan notifikasi untuk order
// baru pertama yang ditemukan, atau nil. Semua id di snapshot ditandai
// sebagai sudah terlihat, termasuk yang tidak dinotifikasikan.
func (d *Detector) Observe(orders []models.Order) *Notice {
	var notice *Notice
	for i := range orders {
		o := &orders[i]
		if _, ok := d.seen[o.ID]; ok {
			continue
		}
		d.seen[o.ID] = struct{}{}
		if d.hadOrders && notice == nil {
			table := o.TableNumber
			if table == "" {
				table = "N/A"
			}
			notice = &Notice{
				OrderID: o.ID,
				Table:   table,
				Message: fmt.Sprintf("New order at table %s", table),
			}
		}
	}
	d.hadOrders = len(orders) > 0
	return notice
}
