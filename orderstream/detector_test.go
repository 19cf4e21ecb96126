package orderstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcafe/ordering-app/models"
)

func TestDetectorFirstSnapshotNeverNotifies(t *testing.T) {
	d := NewDetector()

	notice := d.Observe([]models.Order{
		{ID: "o1", TableNumber: "T1"},
		{ID: "o2", TableNumber: "T2"},
	})

	assert.Nil(t, notice)
}

func TestDetectorNotifiesFirstUnseenOnly(t *testing.T) {
	d := NewDetector()
	d.Observe([]models.Order{{ID: "o1", TableNumber: "T1"}})

	notice := d.Observe([]models.Order{
		{ID: "o1", TableNumber: "T1"},
		{ID: "o2", TableNumber: "T7"},
		{ID: "o3", TableNumber: "T8"},
	})

	require.NotNil(t, notice)
	assert.Equal(t, "o2", notice.OrderID)
	assert.Equal(t, "New order at table T7", notice.Message)

	// o3 sudah ditandai terlihat; snapshot berikutnya tidak mengulang notifikasi.
	assert.Nil(t, d.Observe([]models.Order{
		{ID: "o1", TableNumber: "T1"},
		{ID: "o2", TableNumber: "T7"},
		{ID: "o3", TableNumber: "T8"},
	}))
}

func TestDetectorEmptyPreviousSnapshotStaysQuiet(t *testing.T) {
	d := NewDetector()
	assert.Nil(t, d.Observe(nil))

	// Order pertama di restoran yang mulai dari kosong bukan notifikasi:
	// hanya order yang datang saat sudah ada order lain yang dianggap baru.
	assert.Nil(t, d.Observe([]models.Order{{ID: "o1", TableNumber: "T3"}}))

	notice := d.Observe([]models.Order{
		{ID: "o1", TableNumber: "T3"},
		{ID: "o2", TableNumber: "T4"},
	})
	require.NotNil(t, notice)
	assert.Equal(t, "New order at table T4", notice.Message)
}

func TestDetectorMissingTableFallsBack(t *testing.T) {
	d := NewDetector()
	d.Observe([]models.Order{{ID: "o0", TableNumber: "T1"}})

	notice := d.Observe([]models.Order{
		{ID: "o0", TableNumber: "T1"},
		{ID: "o1"},
	})
	require.NotNil(t, notice)
	assert.Equal(t, "New order at table N/A", notice.Message)
}
