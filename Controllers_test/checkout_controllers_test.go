package Controllers_test

import (
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
)

func setupCheckoutRouter(svc *services.CheckoutService) *gin.Engine {
	router := gin.New()
	checkoutCtrl := controllers.NewCheckoutController(svc)
	router.POST("/orders/checkout", checkoutCtrl.Checkout)
	router.POST("/pos/orders", checkoutCtrl.Checkout)
	return router
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	var item models.MenuItem
	require.NoError(t, db.First(&item, id).Error)
	return item.Quantity
}

func TestCheckoutCreated(t *testing.T) {
	db := setupTestDB(t)
	burger := seedMenuItem(t, db, "Burger", "5.00", 10)
	router := setupCheckoutRouter(services.NewCheckoutService(db))

	w := doJSON(t, router, http.MethodPost, "/orders/checkout", map[string]interface{}{
		"customer_name": "Alice",
		"items":         []map[string]interface{}{{"menu_item_id": burger.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Len(t, resp["order_number"], 8)
	assert.Equal(t, "Alice", resp["customer_name"])
	assert.NotEmpty(t, resp["order_date"])
	assert.Equal(t, "15", resp["total_amount"])

	items, ok := resp["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "Burger", line["menu_item_name"])
	assert.Equal(t, float64(3), line["quantity"])
	assert.Equal(t, "5", line["price"])
	assert.Equal(t, "15", line["subtotal"])

	assert.Equal(t, 7, stockOf(t, db, burger.ID))
}

func TestCheckoutAliasRoute(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Soto", "2.50", 4)
	router := setupCheckoutRouter(services.NewCheckoutService(db))

	w := doJSON(t, router, http.MethodPost, "/pos/orders", map[string]interface{}{
		"customer_name": "Bayu",
		"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 4}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "10", decode(t, w)["total_amount"])
	assert.Zero(t, stockOf(t, db, item.ID))
}

func TestCheckoutFieldErrors(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Bakso", "4.00", 10)
	router := setupCheckoutRouter(services.NewCheckoutService(db))

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing customer", map[string]interface{}{
			"items": []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}},
		}, "customer_name"},
		{"empty items", map[string]interface{}{
			"customer_name": "Cici", "items": []interface{}{},
		}, "items"},
		{"zero quantity", map[string]interface{}{
			"customer_name": "Cici",
			"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 0}},
		}, "items[0].quantity"},
		{"negative quantity", map[string]interface{}{
			"customer_name": "Cici",
			"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}, {"menu_item_id": item.ID, "quantity": -1}},
		}, "items[1].quantity"},
		{"blank customer", map[string]interface{}{
			"customer_name": "   ",
			"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}},
		}, "customer_name"},
		{"unknown menu item", map[string]interface{}{
			"customer_name": "Cici",
			"items":         []map[string]interface{}{{"menu_item_id": 999, "quantity": 1}},
		}, "items[0].menu_item_id"},
		{"malformed body", "not an object", "non_field_errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/orders/checkout", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			errs, ok := decode(t, w)["errors"].(map[string]interface{})
			require.True(t, ok, w.Body.String())
			assert.Contains(t, errs, tt.field)
		})
	}

	assert.Equal(t, 10, stockOf(t, db, item.ID))
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	sate := seedMenuItem(t, db, "Sate", "2.00", 2)
	teh := seedMenuItem(t, db, "Teh", "1.00", 0)
	router := setupCheckoutRouter(services.NewCheckoutService(db))

	w := doJSON(t, router, http.MethodPost, "/orders/checkout", map[string]interface{}{
		"customer_name": "Dodi",
		"items": []map[string]interface{}{
			{"menu_item_id": sate.ID, "quantity": 5},
			{"menu_item_id": teh.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "Not enough stock for the following items.", resp["error"])
	short, ok := resp["insufficient_stock_items"].([]interface{})
	require.True(t, ok)
	require.Len(t, short, 2)
	assert.Equal(t, map[string]interface{}{
		"menu_item_id":       float64(sate.ID),
		"menu_item_name":     "Sate",
		"requested_quantity": float64(5),
		"available_quantity": float64(2),
	}, short[0])
	assert.Equal(t, "Teh", short[1].(map[string]interface{})["menu_item_name"])

	assert.Equal(t, 2, stockOf(t, db, sate.ID))
}

func TestCheckoutConflict(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Rawon", "6.00", 10)
	svc := services.NewCheckoutService(db)
	svc.NewOrderCode = func() string { return "SAMECODE" }
	router := setupCheckoutRouter(svc)

	body := map[string]interface{}{
		"customer_name": "Eko",
		"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}},
	}
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/orders/checkout", body).Code)

	w := doJSON(t, router, http.MethodPost, "/orders/checkout", body)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, true, resp["retryable"])
	assert.NotEmpty(t, resp["error"])

	assert.Equal(t, 9, stockOf(t, db, item.ID))
}

func TestCheckoutInternalError(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Pempek", "3.00", 10)
	router := setupCheckoutRouter(services.NewCheckoutService(db))

	require.NoError(t, db.Migrator().DropTable(&models.InventoryTransaction{}))

	w := doJSON(t, router, http.MethodPost, "/orders/checkout", map[string]interface{}{
		"customer_name": "Fani",
		"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decode(t, w)["error"])

	// rolled back
	assert.Equal(t, 10, stockOf(t, db, item.ID))
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestCheckoutEdgeInputs(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Kue Lapis", "1.00", 10)
	router := setupCheckoutRouter(services.NewCheckoutService(db))

	// jumlah sangat besar -> stok kurang, bukan konflik
	w := doJSON(t, router, http.MethodPost, "/orders/checkout", map[string]interface{}{
		"customer_name": "Nining",
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID, "quantity": int64(math.MaxInt64)},
			{"menu_item_id": item.ID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, decode(t, w), "insufficient_stock_items")

	// nama dihitung per karakter
	w = doJSON(t, router, http.MethodPost, "/orders/checkout", map[string]interface{}{
		"customer_name": strings.Repeat("ü", 60),
		"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 9, stockOf(t, db, item.ID))
}
