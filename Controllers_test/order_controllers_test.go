package Controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
)

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.GET("/orders/:order_number", orderCtrl.GetOrderByNumber)
	router.GET("/orders/:order_number/receipt", orderCtrl.GetOrderReceipt)
	router.DELETE("/orders/:order_number", orderCtrl.DeleteOrder)
	return router
}

func placeOrder(t *testing.T, db *gorm.DB, customer string, lines ...services.LineRequest) *models.Receipt {
	t.Helper()
	receipt, err := services.NewCheckoutService(db).Checkout(context.Background(), services.CheckoutRequest{
		CustomerName: customer,
		Items:        lines,
	})
	require.NoError(t, err)
	return receipt
}

func TestOrderReadSide(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Nasi Goreng", "5.00", 10)
	receipt := placeOrder(t, db, "Gilang", services.LineRequest{MenuItemID: item.ID, Quantity: 3})
	placeOrder(t, db, "Hana", services.LineRequest{MenuItemID: item.ID, Quantity: 1})
	router := setupOrderRouter(db)

	// list
	w := doJSON(t, router, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders, ok := decode(t, w)["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, orders, 2)

	w = doJSON(t, router, http.MethodGet, "/orders?customer_name=Hana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	// detail
	w = doJSON(t, router, http.MethodGet, "/orders/"+receipt.OrderNumber, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, receipt.OrderNumber, detail["order_number"])
	assert.Equal(t, "15", detail["total_amount"])
	assert.Len(t, detail["items"], 1)

	// receipt keeps the frozen price after the menu price changes
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", item.ID).
		Update("price", decimal.RequireFromString("8.00")).Error)
	w = doJSON(t, router, http.MethodGet, "/orders/"+receipt.OrderNumber+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	again := decode(t, w)
	assert.Equal(t, "15", again["total_amount"])
	line := again["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Nasi Goreng", line["menu_item_name"])
	assert.Equal(t, "5", line["price"])

	w = doJSON(t, router, http.MethodGet, "/orders/NOPE0000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrderCascades(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Ayam Bakar", "9.00", 5)
	receipt := placeOrder(t, db, "Irfan", services.LineRequest{MenuItemID: item.ID, Quantity: 2})
	router := setupOrderRouter(db)

	w := doJSON(t, router, http.MethodDelete, "/orders/"+receipt.OrderNumber, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var orders, lines int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&lines)
	assert.Zero(t, orders)
	assert.Zero(t, lines)

	// stok tidak dikembalikan
	assert.Equal(t, 3, stockOf(t, db, item.ID))

	w = doJSON(t, router, http.MethodDelete, "/orders/"+receipt.OrderNumber, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
