package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Order("id").Find(&menus).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var body struct {
		Name        string `json:"name" binding:"required,max=100"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}

	menu := models.Menu{Name: body.Name, Description: body.Description}
	if err := mc.DB.Omit(clause.Associations).Create(&menu).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// GetMenuByID -> detail menu beserta items
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, err := parseIDParam(c, "menu_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := mc.DB.Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&menu, id).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// GetMenuItems lists the items that belong to one menu.
func (mc *MenuController) GetMenuItems(c *gin.Context) {
	id, err := parseIDParam(c, "menu_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		respondDBError(c, err)
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Where("menu_id = ?", id).Order("id").Find(&items).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Items of menu "+menu.Name, items)
}

// UpdateMenu
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, err := parseIDParam(c, "menu_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		respondDBError(c, err)
		return
	}
	if body.Name != nil {
		menu.Name = *body.Name
	}
	if body.Description != nil {
		menu.Description = *body.Description
	}

	if err := mc.DB.Omit(clause.Associations).Save(&menu).Error; err != nil {
		respondDBError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu, items ikut terhapus (cascade)
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, err := parseIDParam(c, "menu_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := mc.DB.Delete(&models.Menu{}, id)
	if res.Error != nil {
		respondDBError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondDBError(c, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
