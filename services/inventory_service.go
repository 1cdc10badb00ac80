package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-pos/models"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// Restock adds quantity units to a menu item and records a purchase in the
// inventory ledger, atomically.
func Restock(ctx context.Context, db *gorm.DB, menuItemID uint, quantity int, unitCost decimal.Decimal) (*models.MenuItem, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Line: -1, Message: "Ensure this value is greater than 0."}
	}

	var item models.MenuItem
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, menuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMenuItemNotFound
			}
			return err
		}

		if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
			return fmt.Errorf("increment stock: %w", err)
		}

		return tx.Omit(clause.Associations).Create(&models.InventoryTransaction{
			MenuItemID:      item.ID,
			Quantity:        quantity,
			TransactionType: models.TransactionTypePurchase,
			Price:           unitCost,
			TransactionDate: time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	// re-read so the caller sees the stored quantity
	if err := db.WithContext(ctx).First(&item, menuItemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
