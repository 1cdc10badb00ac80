package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

func TestFormatReceipt(t *testing.T) {
	orderDate := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	order := &models.Order{
		OrderNumber:  "1A2B3C4D",
		CustomerName: "Lina",
		OrderDate:    orderDate,
		TotalAmount:  decimal.RequireFromString("12.5"),
		OrderItems: []models.OrderItem{
			{MenuItemID: 1, MenuItem: models.MenuItem{Name: "Mie Ayam"}, Quantity: 2, Price: decimal.RequireFromString("3.25")},
			{MenuItemID: 2, MenuItem: models.MenuItem{Name: "Jus Jeruk"}, Quantity: 3, Price: decimal.RequireFromString("2")},
		},
	}

	receipt := FormatReceipt(order)

	assert.Equal(t, "1A2B3C4D", receipt.OrderNumber)
	assert.Equal(t, "Lina", receipt.CustomerName)
	assert.True(t, receipt.OrderDate.Equal(orderDate))
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, uint(1), receipt.Items[0].MenuItemID)
	assert.Equal(t, "Mie Ayam", receipt.Items[0].MenuItemName)
	assert.Equal(t, 2, receipt.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("3.25").Equal(receipt.Items[0].Price))
	assert.True(t, decimal.RequireFromString("6.5").Equal(receipt.Items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("6").Equal(receipt.Items[1].Subtotal))
	assert.True(t, SumOrderItems(order.OrderItems).Equal(receipt.TotalAmount))
}

func TestFormatReceiptEmptyOrder(t *testing.T) {
	receipt := FormatReceipt(&models.Order{OrderNumber: "X"})
	assert.NotNil(t, receipt.Items)
	assert.Empty(t, receipt.Items)
	assert.True(t, receipt.TotalAmount.IsZero())
}

func TestNewOrderCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, NewOrderCode())
	}
}
