package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

func TestStockMonitorReportsChangesOnly(t *testing.T) {
	db := newTestDB(t)
	low := seedMenuItem(t, db, "Pisang Goreng", "1.00", 2)
	seedMenuItem(t, db, "Teh Manis", "1.00", 50)

	monitor := NewStockMonitor(db, 5, nil)

	first := monitor.checkStock()
	require.Len(t, first, 1)
	assert.Equal(t, low.ID, first[0].ID)

	// unchanged -> tidak dilaporkan lagi
	assert.Empty(t, monitor.checkStock())

	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", low.ID).Update("quantity", 1).Error)
	again := monitor.checkStock()
	require.Len(t, again, 1)
	assert.Equal(t, 1, again[0].Quantity)

	// restocked above threshold, then dropping again is a new report
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", low.ID).Update("quantity", 20).Error)
	assert.Empty(t, monitor.checkStock())
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", low.ID).Update("quantity", 1).Error)
	assert.Len(t, monitor.checkStock(), 1)
}

func TestStockMonitorStartNotifies(t *testing.T) {
	db := newTestDB(t)
	seedMenuItem(t, db, "Lumpia", "1.00", 0)

	var (
		mu       sync.Mutex
		notified []models.MenuItem
	)
	monitor := NewStockMonitor(db, 3, func(items []models.MenuItem) {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, items...)
	})
	monitor.Interval = 10 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(notified) == 1
	}, time.Second, 10*time.Millisecond)
}
