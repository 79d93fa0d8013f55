package routes

import (
	"github.com/pehnava/pehnava/app/controllers"
	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/repositories"
	"github.com/pehnava/pehnava/app/services"
	"github.com/pehnava/pehnava/config"
	"github.com/pehnava/pehnava/pkg/middleware"
	"github.com/pehnava/pehnava/pkg/rbac"
	"github.com/pehnava/pehnava/pkg/router"
	"github.com/pehnava/pehnava/pkg/ws"
)

// RegisterAPI wires repositories into services, services into
// controllers, and controllers onto named routes.
func RegisterAPI(r *router.Router, hub *ws.Hub) {
	users := repositories.NewUserRepository()
	products := repositories.NewProductRepository()
	orders := repositories.NewOrderRepository()
	tryons := repositories.NewTryOnRepository()
	activities := repositories.NewActivityRepository()

	authService := services.NewAuthService(users)
	catalogService := services.NewCatalogService(products)
	activityService := services.NewActivityService(activities, hub)
	orderService := services.NewOrderService(orders, products)
	analyticsService := services.NewAnalyticsService(products, orders, tryons)
	tryonService := services.NewTryOnService(products, config.TryOnEndpoint(), 4)

	authController := controllers.NewAuthController(authService)
	productController := controllers.NewProductController(catalogService)
	orderController := controllers.NewOrderController(orderService, catalogService, activityService)
	analyticsController := controllers.NewAnalyticsController(analyticsService, tryonService, activityService)
	activityController := controllers.NewActivityController(activityService, hub)

	api := r.Group("/api")

	// Public.
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)
	api.Get("/products", "products.index", productController.Index)
	api.Get("/products/{id}", "products.show", productController.Show)

	// Try-on is open to anonymous shoppers; a token adds identity.
	api.Post("/tryon", "tryon.log", analyticsController.LogTryOn, middleware.OptionalAuth)
	api.Post("/tryon/synthesize", "tryon.synthesize", analyticsController.Synthesize, middleware.OptionalAuth)

	// Any authenticated account.
	protected := api.Group("", middleware.Auth)
	protected.Get("/auth/profile", "auth.profile", authController.Profile)
	protected.Put("/auth/profile", "auth.profile.update", authController.UpdateProfile)
	protected.Post("/orders", "orders.store", orderController.Store)
	protected.Get("/orders/myorders", "orders.mine", orderController.MyOrders)
	protected.Get("/orders/{id}", "orders.show", orderController.Show)
	protected.Put("/orders/{id}/pay", "orders.pay", orderController.ConfirmPayment)
	protected.Put("/orders/clear", "orders.clear", orderController.Clear)
	protected.Delete("/orders/{id}", "orders.destroy", orderController.Destroy)

	// Seller dashboard.
	seller := protected.Group("", rbac.HasRole(models.RoleAdmin))
	seller.Get("/products/mine/list", "products.mine", productController.Mine)
	seller.Post("/products", "products.store", productController.Store)
	seller.Put("/products/{id}", "products.update", productController.Update)
	seller.Post("/uploads", "uploads.store", productController.UploadImage)
	seller.Delete("/products/{id}", "products.destroy", productController.Destroy)
	seller.Get("/orders", "orders.seller", orderController.SellerIndex)
	seller.Put("/orders/{id}/status", "orders.status", orderController.UpdateStatus)
	seller.Get("/analytics", "analytics.summary", analyticsController.Summary)
	seller.Get("/activities", "activities.index", activityController.Index)
	seller.Get("/activities/feed", "activities.feed", activityController.Feed)
}
