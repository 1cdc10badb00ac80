package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a sellable entry of a menu. Quantity is the stock available
// for checkout and must never drop below zero.
type MenuItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	MenuID     *uint           `gorm:"index" json:"menu_id"`
	Menu       *Menu           `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CategoryID *uint           `gorm:"index" json:"category_id"`
	Category   *MenuCategory   `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	Unit       string          `gorm:"type:varchar(20)" json:"unit"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int             `gorm:"not null;check:quantity >= 0" json:"quantity"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}
