package services

import (
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// StockMonitor polls menu items and reports those at or below Threshold.
// An item is reported again only after its quantity changes.
type StockMonitor struct {
	DB        *gorm.DB
	StopChan  chan struct{}
	Interval  time.Duration
	Threshold int
	Notify    func(items []models.MenuItem)

	notified map[uint]int
}

func NewStockMonitor(db *gorm.DB, threshold int, notify func(items []models.MenuItem)) *StockMonitor {
	return &StockMonitor{
		DB:        db,
		StopChan:  make(chan struct{}),
		Interval:  30 * time.Second,
		Threshold: threshold,
		Notify:    notify,
		notified:  make(map[uint]int),
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.checkStock()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

// checkStock returns the items that were newly reported.
func (sm *StockMonitor) checkStock() []models.MenuItem {
	var items []models.MenuItem
	if err := sm.DB.Where("quantity <= ?", sm.Threshold).
		Order("quantity ASC, id ASC").
		Find(&items).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching low stock items: %v", err)
		return nil
	}

	current := make(map[uint]int, len(items))
	var fresh []models.MenuItem
	for _, item := range items {
		current[item.ID] = item.Quantity
		if last, ok := sm.notified[item.ID]; ok && last == item.Quantity {
			continue
		}
		fresh = append(fresh, item)
	}
	// items restocked above the threshold are forgotten so a later drop is reported again
	sm.notified = current

	if len(fresh) > 0 {
		utils.InfoLogger.Printf("Found %d low stock items", len(fresh))
		if sm.Notify != nil {
			sm.Notify(fresh)
		}
	}
	return fresh
}
