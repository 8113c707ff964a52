// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshmeals/web/internal/config"
	"github.com/freshmeals/web/internal/domain/checkout"
	"github.com/freshmeals/web/internal/domain/order"
	"github.com/freshmeals/web/internal/domain/payment"
	"github.com/freshmeals/web/internal/domain/summary"
	"github.com/freshmeals/web/internal/interfaces/http/handlers"
	"github.com/freshmeals/web/internal/interfaces/http/middleware"
	"github.com/freshmeals/web/internal/pkg/auth"
)

// Deps carries everything the route handlers need
type Deps struct {
	Config    *config.Config
	Log       *logrus.Logger
	Registry  *checkout.Registry
	Intake    *payment.IntakeService
	Orders    order.Repository
	Summaries *summary.MemoryStore
	Passwords *auth.PasswordManager
	Sessions  *auth.SessionStore
}

// SetupRoutes wires all public, checkout, payment and admin routes
func SetupRoutes(router *gin.Engine, deps Deps) {
	pageHandler := handlers.NewPageHandler(deps.Config, deps.Log)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Registry, deps.Config)
	paymentHandler := handlers.NewPaymentHandler(deps.Intake, deps.Summaries, deps.Config, deps.Log)
	adminHandler := handlers.NewAdminHandler(deps.Passwords, deps.Sessions, deps.Orders, deps.Config, deps.Log)

	// Informational pages
	router.GET("/", pageHandler.Home)
	router.GET("/how", pageHandler.How)
	router.GET("/menu", pageHandler.Menu)
	router.GET("/founders", pageHandler.Founders)
	router.GET("/contact", pageHandler.Contact)
	router.GET("/reviews", pageHandler.Reviews)
	router.GET("/newsletter", pageHandler.Newsletter)
	router.GET("/faq", pageHandler.FAQ)
	router.GET("/allergens", pageHandler.Allergens)

	router.POST("/contact", pageHandler.SubmitContact)
	router.POST("/newsletter", pageHandler.SubmitNewsletter)

	// Order flow
	router.GET("/order", checkoutHandler.OrderPage)

	api := router.Group("/api")
	{
		co := api.Group("/checkout")
		{
			co.POST("/items/:id", checkoutHandler.SetItem)
			co.POST("/next", checkoutHandler.Next)
			co.POST("/back", checkoutHandler.Back)
			co.POST("/delivery", checkoutHandler.Delivery)
			co.GET("/summary", checkoutHandler.Summary)
			co.POST("/payment/sync", checkoutHandler.PaymentSync)
		}

		api.POST("/payments/create-intent", paymentHandler.CreateIntent)
		api.GET("/orders/last-summary", paymentHandler.LastSummary)
	}

	// Admin
	router.GET("/admin/login", adminHandler.LoginPage)
	router.POST("/admin/login", adminHandler.Login)
	router.POST("/admin/logout", adminHandler.Logout)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminSession(deps.Sessions))
	{
		admin.GET("", adminHandler.Dashboard)
		admin.GET("/orders", adminHandler.ListOrders)
		admin.POST("/orders/:id/status", adminHandler.UpdateStatus)
	}
}
