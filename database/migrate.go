package database

import (
	"fmt"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// Models lists every table owned by this service, parents first.
func Models() []interface{} {
	return []interface{}{
		&models.MenuCategory{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryTransaction{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Verifikasi constraint penting
	for _, check := range []struct {
		model interface{}
		name  string
	}{
		{&models.Order{}, "idx_orders_order_number"},
	} {
		if !db.Migrator().HasIndex(check.model, check.name) {
			return fmt.Errorf("missing index %s", check.name)
		}
	}

	if utils.InfoLogger != nil {
		utils.InfoLogger.Println("AutoMigrate completed.")
	}
	return nil
}
