package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/emekaobi/storefront-backend/common/errors"
	"github.com/emekaobi/storefront-backend/common/logger"
	"github.com/emekaobi/storefront-backend/config"
	"github.com/emekaobi/storefront-backend/controllers"
	"github.com/emekaobi/storefront-backend/middleware"
)

// Controllers groups everything the router wires up.
type Controllers struct {
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Orders   *controllers.OrderController
	Prefs    *controllers.PrefsController
}

// Register wires all storefront and admin routes onto the engine.
func Register(r *gin.Engine, cfg config.Config, ctrl Controllers) {
	r.Use(logger.RequestLogger())
	r.Use(errors.ErrorMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	products := r.Group("/products")
	{
		products.GET("", ctrl.Products.GetProducts)
		products.GET("/:id", ctrl.Products.GetProductByID)
	}

	cart := r.Group("/cart")
	{
		cart.GET("", ctrl.Cart.GetCart)
		cart.POST("/items", ctrl.Cart.AddItem)
		cart.POST("/items/:product_id/increase", ctrl.Cart.IncreaseItem)
		cart.POST("/items/:product_id/decrease", ctrl.Cart.DecreaseItem)
		cart.DELETE("/items/:product_id", ctrl.Cart.RemoveItem)
		cart.DELETE("", ctrl.Cart.ClearCart)
		cart.POST("/visibility", ctrl.Cart.SetVisibility)
	}

	r.DELETE("/session", ctrl.Cart.EndSession)

	// Checkout is rate-limited: one attempt per second per IP with a small
	// burst covers real shoppers and blunts abuse.
	checkoutLimit := middleware.RateLimit(rate.Every(time.Second), 5)
	r.POST("/checkout", checkoutLimit, ctrl.Checkout.Submit)
	r.GET("/checkout/:tx_ref", ctrl.Checkout.GetAttempt)

	payments := r.Group("/payments")
	{
		payments.POST("/webhook", ctrl.Checkout.Webhook)
		payments.GET("/callback", ctrl.Checkout.Callback)
	}

	ui := r.Group("/ui")
	{
		ui.GET("/theme", ctrl.Prefs.GetTheme)
		ui.PUT("/theme", ctrl.Prefs.SetTheme)
	}

	admin := r.Group("/admin", middleware.RequireAdmin([]byte(cfg.JWTSecret)))
	{
		admin.POST("/products", ctrl.Products.CreateProduct)
		admin.PUT("/products/:id", ctrl.Products.UpdateProduct)
		admin.DELETE("/products/:id", ctrl.Products.DeleteProduct)

		admin.GET("/orders", ctrl.Orders.GetOrders)
		admin.GET("/orders/stats", ctrl.Orders.GetStats)
		admin.GET("/orders/:id", ctrl.Orders.GetOrder)
		admin.PATCH("/orders/:id/status", ctrl.Orders.UpdateStatus)
	}
}

func corsConfig(allowedOrigins string) cors.Config {
	cfg := cors.DefaultConfig()
	if allowedOrigins == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Session-ID")
	cfg.AllowCredentials = !cfg.AllowAllOrigins
	return cfg
}
