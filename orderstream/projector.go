package orderstream

import (
	"sort"
	"strings"

	"github.com/smartcafe/ordering-app/models"
)

// Project mengurutkan snapshot order menjadi view operasional staff: semua
// order aktif dulu, baru order completed, dan di dalam tiap kelompok yang
// paling baru diubah tampil paling atas. Sort yang dipakai stable supaya
// order dengan waktu identik tidak loncat-loncat antar refresh.
func Project(orders []models.Order) []models.Order {
	active := make([]models.Order, 0, len(orders))
	completed := make([]models.Order, 0)
	for _, o := range orders {
		if strings.EqualFold(o.Status, models.StatusCompleted) {
			completed = append(completed, o)
		} else {
			active = append(active, o)
		}
	}

	byRecency := func(list []models.Order) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].EffectiveTime().After(list[j].EffectiveTime())
		})
	}
	byRecency(active)
	byRecency(completed)

	return append(active, completed...)
}

// ProjectForTable adalah varian customer: hanya order milik satu meja dan
// tanpa order yang sudah selesai atau dibatalkan. Hasilnya diurutkan dengan
// aturan recency yang sama dengan view staff.
func ProjectForTable(orders []models.Order, table string) []models.Order {
	own := make([]models.Order, 0)
	for _, o := range orders {
		if o.TableNumber != table {
			continue
		}
		if models.IsTerminalStatus(o.Status) {
			continue
		}
		own = append(own, o)
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].EffectiveTime().After(own[j].EffectiveTime())
	})
	return own
}
