package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var (
	errNegativePrice    = errors.New("price must not be negative")
	errNegativeUnitCost = errors.New("unit_cost must not be negative")
)

type MenuItemController struct {
	DB *gorm.DB
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	utils.RegisterJSONTagNames()
	return &MenuItemController{DB: db}
}

// GetAllMenuItems, optionally filtered with ?menu_id= or ?category_id=
func (mc *MenuItemController) GetAllMenuItems(c *gin.Context) {
	query := mc.DB.Preload("Category").Order("id")
	if menuID := c.Query("menu_id"); menuID != "" {
		query = query.Where("menu_id = ?", menuID)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	var body struct {
		MenuID     *uint            `json:"menu_id"`
		CategoryID *uint            `json:"category_id"`
		Name       string           `json:"name" binding:"required,max=100"`
		Unit       string           `json:"unit" binding:"max=20"`
		Price      *decimal.Decimal `json:"price" binding:"required"`
		Quantity   int              `json:"quantity" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}
	if body.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errNegativePrice)
		return
	}

	item := models.MenuItem{
		MenuID:     body.MenuID,
		CategoryID: body.CategoryID,
		Name:       body.Name,
		Unit:       body.Unit,
		Price:      *body.Price,
		Quantity:   body.Quantity,
	}
	if err := mc.DB.Omit(clause.Associations).Create(&item).Error; err != nil {
		respondDBError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// GetMenuItemByID
func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	id, err := parseIDParam(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.Preload("Category").First(&item, id).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// UpdateMenuItem applies a partial update. A quantity change is recorded as
// an adjustment in the inventory ledger.
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	id, err := parseIDParam(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		MenuID     *uint            `json:"menu_id"`
		CategoryID *uint            `json:"category_id"`
		Name       *string          `json:"name" binding:"omitempty,min=1,max=100"`
		Unit       *string          `json:"unit" binding:"omitempty,max=20"`
		Price      *decimal.Decimal `json:"price"`
		Quantity   *int             `json:"quantity" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}
	if body.Price != nil && body.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errNegativePrice)
		return
	}

	var item models.MenuItem
	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error; err != nil {
			return err
		}

		delta := 0
		if body.Quantity != nil {
			delta = *body.Quantity - item.Quantity
			item.Quantity = *body.Quantity
		}
		if body.MenuID != nil {
			item.MenuID = body.MenuID
		}
		if body.CategoryID != nil {
			item.CategoryID = body.CategoryID
		}
		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.Unit != nil {
			item.Unit = *body.Unit
		}
		if body.Price != nil {
			item.Price = *body.Price
		}

		if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&models.InventoryTransaction{
			MenuItemID:      item.ID,
			Quantity:        delta,
			TransactionType: models.TransactionTypeAdjustment,
			Price:           item.Price,
			TransactionDate: time.Now().UTC(),
		}).Error
	})
	if err != nil {
		respondDBError(c, err)
		return
	}

	kds.BroadcastMenuItemUpdate(item)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	id, err := parseIDParam(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := mc.DB.Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		respondDBError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondDBError(c, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_item_id": id})
}

// RestockMenuItem -> tambah stok dan catat pembelian
func (mc *MenuItemController) RestockMenuItem(c *gin.Context) {
	id, err := parseIDParam(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Quantity int             `json:"quantity" binding:"required,gt=0"`
		UnitCost decimal.Decimal `json:"unit_cost"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}
	if body.UnitCost.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errNegativeUnitCost)
		return
	}

	item, err := services.Restock(c.Request.Context(), mc.DB, id, body.Quantity, body.UnitCost)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		respondDBError(c, err)
		return
	}

	kds.BroadcastMenuItemUpdate(*item)
	utils.RespondJSON(c, http.StatusOK, "Menu item restocked", item)
}
