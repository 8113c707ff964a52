// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshmeals/web/internal/config"
	"github.com/freshmeals/web/internal/domain/order"
	"github.com/freshmeals/web/internal/interfaces/http/middleware"
	"github.com/freshmeals/web/internal/pkg/auth"
)

// AdminHandler serves the admin login and the order dashboard
type AdminHandler struct {
	passwords *auth.PasswordManager
	sessions  *auth.SessionStore
	orders    order.Repository
	config    *config.Config
	log       *logrus.Logger
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(passwords *auth.PasswordManager, sessions *auth.SessionStore, orders order.Repository, cfg *config.Config, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		passwords: passwords,
		sessions:  sessions,
		orders:    orders,
		config:    cfg,
		log:       log,
	}
}

// LoginPage handles GET /admin/login
func (h *AdminHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"Title":   "Admin Login",
		"AppName": h.config.App.Name,
	})
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	password := c.PostForm("password")

	if !h.passwords.Verify(password) {
		h.log.WithField("client_ip", c.ClientIP()).Warn("Failed admin login attempt")
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"Title":   "Admin Login",
			"AppName": h.config.App.Name,
			"Error":   "Invalid password.",
		})
		return
	}

	token := h.sessions.Create()
	maxAge := int(h.config.Admin.CookieMaxAge.Seconds())
	c.SetCookie(middleware.AdminSessionCookie, token, maxAge, "/", "", h.config.IsProduction(), true)

	c.Redirect(http.StatusFound, "/admin")
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.AdminSessionCookie); err == nil {
		h.sessions.Destroy(token)
	}
	c.SetCookie(middleware.AdminSessionCookie, "", -1, "/", "", h.config.IsProduction(), true)

	c.Redirect(http.StatusFound, "/admin/login")
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Title":    "Orders",
		"AppName":  h.config.App.Name,
		"Orders":   h.orders.List(),
		"Statuses": []order.Status{order.StatusPending, order.StatusPreparing, order.StatusShipped, order.StatusDelivered, order.StatusCancelled},
	})
}

// ListOrders handles GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"orders": h.orders.List(),
	})
}

// UpdateStatus handles POST /admin/orders/:id/status. Unknown status values
// are silently ignored; the order keeps its prior status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.orders.FindByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	if status, ok := order.ParseStatus(c.PostForm("status")); ok {
		if err := h.orders.UpdateStatus(id, status); err != nil {
			h.log.WithError(err).WithField("order_id", id).Warn("Failed to update order status")
		}
	}

	c.Redirect(http.StatusFound, "/admin")
}
