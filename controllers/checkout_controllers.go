package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CheckoutController struct {
	Service *services.CheckoutService
}

func NewCheckoutController(svc *services.CheckoutService) *CheckoutController {
	utils.RegisterJSONTagNames()
	return &CheckoutController{Service: svc}
}

type checkoutItemBody struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

type checkoutBody struct {
	CustomerName string             `json:"customer_name" binding:"required,max=100"`
	Items        []checkoutItemBody `json:"items" binding:"required,min=1,dive"`
}

// Checkout -> validasi, cek stok, potong stok, simpan order, kembalikan struk
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var body checkoutBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}

	req := services.CheckoutRequest{
		CustomerName: body.CustomerName,
		Items:        make([]services.LineRequest, 0, len(body.Items)),
	}
	for _, item := range body.Items {
		req.Items = append(req.Items, services.LineRequest{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	receipt, err := cc.Service.Checkout(c.Request.Context(), req)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func respondCheckoutError(c *gin.Context, err error) {
	var (
		verr *services.ValidationError
		serr *services.InsufficientStockError
		cerr *services.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		utils.RespondFieldErrors(c, http.StatusBadRequest, map[string][]string{
			verr.Field: {verr.Message},
		})
	case errors.As(err, &serr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                    serr.Message(),
			"insufficient_stock_items": serr.Items,
		})
	case errors.As(err, &cerr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     cerr.Reason,
			"retryable": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Checkout could not be completed.",
		})
	}
}
