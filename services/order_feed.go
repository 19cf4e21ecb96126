package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/orderstream"
	"github.com/smartcafe/ordering-app/realtime"
	"github.com/smartcafe/ordering-app/utils"
)

// OrderFeed melakukan polling tabel orders dan menyiarkan snapshot yang sudah
// diproyeksikan ke semua client websocket setiap kali ada perubahan. Detector
// order baru di-feed dari loop yang sama sehingga notifikasi staff dan
// snapshot selalu konsisten.
type OrderFeed struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration

	detector    *orderstream.Detector
	fingerprint string
}

func NewOrderFeed(db *gorm.DB) *OrderFeed {
	return &OrderFeed{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
		detector: orderstream.NewDetector(),
	}
}

func (f *OrderFeed) Start() {
	go func() {
		ticker := time.NewTicker(f.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				f.poll()
			case <-f.StopChan:
				return
			}
		}
	}()
}

func (f *OrderFeed) Stop() {
	close(f.StopChan)
}

func (f *OrderFeed) poll() {
	var orders []models.Order
	if err := f.DB.Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("Order feed query failed: %v", err)
		return
	}

	// Detector tetap dijalankan walau snapshot tidak berubah strukturnya,
	// supaya order baru pertama setelah start tidak terlewat.
	if notice := f.detector.Observe(orders); notice != nil {
		realtime.BroadcastStaffNotification(*notice)
		LogActivity(f.DB, "new_order_notified",
			fmt.Sprintf(`{"orderId":%q,"table":%q}`, notice.OrderID, notice.Table),
			"", "system")
	}

	fp := snapshotFingerprint(orders)
	if fp == f.fingerprint {
		return
	}
	f.fingerprint = fp

	realtime.BroadcastOrdersSnapshot(orderstream.Project(orders))
}

// snapshotFingerprint merangkum id+status+updatedAt semua order; cukup untuk
// mendeteksi insert, update status, dan delete tanpa membandingkan full row.
func snapshotFingerprint(orders []models.Order) string {
	var b strings.Builder
	for i := range orders {
		o := &orders[i]
		fmt.Fprintf(&b, "%s|%s|%d;", o.ID, o.Status, o.UpdatedAt.UnixNano())
	}
	return b.String()
}
