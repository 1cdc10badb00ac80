package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeSale       = "sale"
	TransactionTypePurchase   = "purchase"
	TransactionTypeReturn     = "return"
	TransactionTypeAdjustment = "adjustment"
)

// InventoryTransaction is one stock movement of a menu item. Sales carry a
// negative Quantity and the order that caused them.
type InventoryTransaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	MenuItemID      uint            `gorm:"not null;index" json:"menu_item_id"`
	MenuItem        MenuItem        `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderID         *uint           `gorm:"index" json:"order_id,omitempty"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	TransactionType string          `gorm:"type:varchar(10);not null" json:"transaction_type"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transaction_date"`
}
