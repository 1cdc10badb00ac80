package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Options carries the dependencies SetupRouter does not build itself.
// Zero values fall back to config.Default() and a private registry.
type Options struct {
	Config     *config.Config
	Registry   *prometheus.Registry
	Publishers []services.OrderEventPublisher
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	metrics := services.NewCheckoutMetrics(registry)

	checkoutSvc := services.NewCheckoutService(db)
	checkoutSvc.Metrics = metrics
	checkoutSvc.Publishers = append([]services.OrderEventPublisher{kds.Publisher{}}, opts.Publishers...)
	txOpts, err := cfg.TxOptions()
	if err != nil {
		utils.ErrorLogger.Printf("Ignoring DB_ISOLATION: %v", err)
	}
	checkoutSvc.TxOptions = txOpts

	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.MetricsMiddleware(metrics))

	// Inisialisasi controller
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(db)
	menuItemCtrl := controllers.NewMenuItemController(db)
	menuCtrl := controllers.NewMenuController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	inventoryCtrl := controllers.NewInventoryController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Endpoint KDS WebSocket
	r.GET("/kds/ws", controllers.KDSHandler)

	// ----------------------------------------------------------------
	//                      CHECKOUT
	// ----------------------------------------------------------------
	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	checkout := r.Group("/")
	checkout.Use(limiter.RateLimit(), middlewares.CheckoutLoggerMiddleware())
	{
		checkout.POST("/orders/checkout", checkoutCtrl.Checkout)
		checkout.POST("/pos/orders", checkoutCtrl.Checkout)
	}

	// ORDERS
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.GET("/orders/:order_number", orderCtrl.GetOrderByNumber)
	r.GET("/orders/:order_number/receipt", orderCtrl.GetOrderReceipt)
	r.DELETE("/orders/:order_number", orderCtrl.DeleteOrder)

	// MENU ITEMS
	r.GET("/menu-items", menuItemCtrl.GetAllMenuItems)
	r.POST("/menu-items", menuItemCtrl.CreateMenuItem)
	r.GET("/menu-items/:item_id", menuItemCtrl.GetMenuItemByID)
	r.PATCH("/menu-items/:item_id", menuItemCtrl.UpdateMenuItem)
	r.DELETE("/menu-items/:item_id", menuItemCtrl.DeleteMenuItem)
	r.POST("/menu-items/:item_id/restock", menuItemCtrl.RestockMenuItem)

	// MENUS
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.POST("/menus", menuCtrl.CreateMenu)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	r.GET("/menus/:menu_id/items", menuCtrl.GetMenuItems)
	r.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
	r.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

	// MENU CATEGORIES
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.POST("/categories", categoryCtrl.CreateCategory)
	r.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
	r.GET("/categories/:cat_id/items", categoryCtrl.GetCategoryItems)
	r.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	r.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	// INVENTORY LEDGER
	r.GET("/inventory-transactions", inventoryCtrl.GetInventoryTransactions)

	return r
}
