package services

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
)

// FormatReceipt projects a committed order into its receipt. Item names come
// from the preloaded MenuItem of each order item; prices come from the order
// item itself, so catalog changes never leak into an old receipt.
func FormatReceipt(order *models.Order) *models.Receipt {
	receipt := &models.Receipt{
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		OrderDate:    order.OrderDate,
		Items:        make([]models.ReceiptItem, 0, len(order.OrderItems)),
		TotalAmount:  order.TotalAmount.Round(2),
	}

	for _, item := range order.OrderItems {
		receipt.Items = append(receipt.Items, models.ReceiptItem{
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItem.Name,
			Quantity:     item.Quantity,
			Price:        item.Price.Round(2),
			Subtotal:     item.Subtotal().Round(2),
		})
	}

	return receipt
}

// SumOrderItems returns the exact sum of the items' subtotals.
func SumOrderItems(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
