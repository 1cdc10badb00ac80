package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> list orders beserta items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems").Order("order_date desc, id desc")
	if customer := c.Query("customer_name"); customer != "" {
		query = query.Where("customer_name = ?", customer)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) findOrder(c *gin.Context) (*models.Order, bool) {
	var order models.Order
	if err := oc.DB.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Preload("OrderItems.MenuItem").
		Where("order_number = ?", c.Param("order_number")).
		First(&order).Error; err != nil {
		respondDBError(c, err)
		return nil, false
	}
	return &order, true
}

// GetOrderByNumber -> detail 1 order
func (oc *OrderController) GetOrderByNumber(c *gin.Context) {
	order, ok := oc.findOrder(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetOrderReceipt rebuilds the receipt from the stored order items, with the
// prices frozen at checkout.
func (oc *OrderController) GetOrderReceipt(c *gin.Context) {
	order, ok := oc.findOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.FormatReceipt(order))
}

// DeleteOrder removes the order and its items. Stock is not returned.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderNumber := c.Param("order_number")

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			return err
		}
		return tx.Select("OrderItems").Delete(&order).Error
	})
	if err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_number": orderNumber})
}
