package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the response projection of a committed order. It is never stored.
type Receipt struct {
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	OrderDate    time.Time       `json:"order_date"`
	Items        []ReceiptItem   `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

type ReceiptItem struct {
	MenuItemID   uint            `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}
