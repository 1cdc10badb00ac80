package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// GetInventoryTransactions lists stock movements, newest first. Filters:
// ?menu_item_id=, ?order_id= and ?transaction_type=.
func (ic *InventoryController) GetInventoryTransactions(c *gin.Context) {
	query := ic.DB.Order("transaction_date desc, id desc")
	if menuItemID := c.Query("menu_item_id"); menuItemID != "" {
		query = query.Where("menu_item_id = ?", menuItemID)
	}
	if orderID := c.Query("order_id"); orderID != "" {
		query = query.Where("order_id = ?", orderID)
	}
	if txType := c.Query("transaction_type"); txType != "" {
		query = query.Where("transaction_type = ?", txType)
	}

	var entries []models.InventoryTransaction
	if err := query.Find(&entries).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory transactions", entries)
}
