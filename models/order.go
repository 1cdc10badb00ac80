package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is only ever written by the checkout transaction, together with
// all of its items. TotalAmount is the sum of Price*Quantity of its items.
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderNumber  string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_number"`
	CustomerName string          `gorm:"type:varchar(100);not null" json:"customer_name"`
	OrderDate    time.Time       `gorm:"not null" json:"order_date"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	OrderItems   []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}
