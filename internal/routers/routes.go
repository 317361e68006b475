package routers

import (
	"torget-app-io/api/internal/container"
	"torget-app-io/api/internal/middleware"
	"torget-app-io/api/pkg/controllers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// InitRoute creates the Gin router over the service container.
func InitRoute(sc *container.ServiceContainer, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.TorgetRateLimiter(redisClient))
	{
		api.GET("/ping", controllers.Ping)

		cartRoutes(api, sc)
		checkoutRoutes(api, sc)
		orderRoutes(api, sc)
		adminRoutes(api, sc)
	}

	return router
}

func cartRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	cart := api.Group("/cart")

	cart.GET("", sc.CartController.GetCart())
	cart.DELETE("", sc.CartController.ClearCart())
	cart.POST("/items", sc.CartController.SaveCartItem())
	cart.PUT("/items", sc.CartController.UpdateCartItemQuantity())
	cart.DELETE("/items", sc.CartController.DeleteCartItem())
}

func checkoutRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	checkout := api.Group("/checkout")

	checkout.POST("", sc.CheckoutController.BeginCheckout())
	checkout.GET("", sc.CheckoutController.GetCheckout())
	checkout.DELETE("", sc.CheckoutController.AbandonCheckout())
	checkout.PUT("/shipping", sc.CheckoutController.SubmitShipping())
	checkout.PUT("/payment", sc.CheckoutController.SubmitPayment())
	checkout.PUT("/back", sc.CheckoutController.StepBack())
	checkout.POST("/order", sc.CheckoutController.PlaceOrder())
}

func orderRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	orders := api.Group("/orders")

	orders.GET("", sc.OrderController.GetOrders())
	orders.GET("/:orderid", sc.OrderController.GetOrder())
}

func adminRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	admin := api.Group("/admin")

	admin.GET("/forms", sc.AdminController.ListForms())
	admin.GET("/forms/:entity", sc.AdminController.GetFormConfig())
	admin.POST("/forms/:entity", sc.AdminController.SubmitForm())
	admin.POST("/forms/:entity/upload", sc.AdminController.UploadFile())
}
