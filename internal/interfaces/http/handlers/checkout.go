// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshmeals/web/internal/config"
	"github.com/freshmeals/web/internal/domain/catalog"
	"github.com/freshmeals/web/internal/domain/checkout"
)

// CheckoutSessionCookie binds a browser to its server-held checkout session
const CheckoutSessionCookie = "checkout_session"

// CheckoutHandler drives the multi-step order flow: cart mutations, step
// navigation, delivery details and payment session syncing.
type CheckoutHandler struct {
	registry *checkout.Registry
	config   *config.Config
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(registry *checkout.Registry, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		registry: registry,
		config:   cfg,
	}
}

// session returns the checkout session for this browser, creating one and
// setting its cookie on first touch
func (h *CheckoutHandler) session(c *gin.Context) *checkout.Session {
	if token, err := c.Cookie(CheckoutSessionCookie); err == nil {
		if sess, ok := h.registry.Get(token); ok {
			return sess
		}
	}

	sess := h.registry.Create()
	c.SetCookie(CheckoutSessionCookie, sess.ID, 0, "/", "", false, true)
	return sess
}

// OrderPage handles GET /order
func (h *CheckoutHandler) OrderPage(c *gin.Context) {
	sess := h.session(c)
	totals := sess.Totals()

	quantities := make(map[string]int, len(catalog.Menu))
	for _, item := range catalog.Menu {
		quantities[item.ID] = sess.Cart.Quantity(item.ID)
	}

	c.HTML(http.StatusOK, "order.html", gin.H{
		"Title":          "Order",
		"AppName":        h.config.App.Name,
		"Menu":           catalog.Menu,
		"Quantities":     quantities,
		"Step":           int(sess.Step()),
		"Totals":         totals,
		"ItemCount":      sess.Cart.TotalItemCount(),
		"Delivery":       sess.Delivery(),
		"Payment":        sess.PaymentState(),
		"PublishableKey": h.config.Stripe.PublishableKey,
		"FreeThreshold":  h.config.Delivery.FreeThreshold,
		"FlatFee":        h.config.Delivery.FlatFee,
		"Error":          c.Query("error"),
		"Status":         c.Query("status"),
	})
}

// SetItem handles POST /api/checkout/items/:id with either an absolute
// quantity or an incr/decr action. Unknown item ids are accepted and simply
// never render.
func (h *CheckoutHandler) SetItem(c *gin.Context) {
	sess := h.session(c)
	itemID := c.Param("id")

	switch c.PostForm("action") {
	case "incr":
		sess.Cart.Increment(itemID)
	case "decr":
		sess.Cart.Decrement(itemID)
	default:
		qty, err := strconv.Atoi(c.PostForm("quantity"))
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/order")
			return
		}
		sess.Cart.SetQuantity(itemID, qty)
	}

	// Totals changed; keep the payment session in step when already on the
	// payment panel
	if sess.Step() == checkout.StepPayment {
		sess.SyncPayment(c.Request.Context())
	}

	c.Redirect(http.StatusSeeOther, "/order")
}

// Next handles POST /api/checkout/next
func (h *CheckoutHandler) Next(c *gin.Context) {
	sess := h.session(c)

	if _, err := sess.Next(c.Request.Context()); err != nil {
		switch err {
		case checkout.ErrEmptyCart:
			c.Redirect(http.StatusSeeOther, "/order?error=empty-cart")
		case checkout.ErrInvalidDelivery:
			c.Redirect(http.StatusSeeOther, "/order?error=delivery")
		default:
			c.Redirect(http.StatusSeeOther, "/order")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/order")
}

// Back handles POST /api/checkout/back; always permitted
func (h *CheckoutHandler) Back(c *gin.Context) {
	sess := h.session(c)
	sess.Back()
	c.Redirect(http.StatusSeeOther, "/order")
}

// Delivery handles POST /api/checkout/delivery: stores the submitted
// details and advances when they validate
func (h *CheckoutHandler) Delivery(c *gin.Context) {
	sess := h.session(c)

	var details checkout.DeliveryDetails
	if err := c.ShouldBind(&details); err != nil {
		c.Redirect(http.StatusSeeOther, "/order?error=delivery")
		return
	}

	sess.SetDelivery(details)

	if _, err := sess.Next(c.Request.Context()); err != nil {
		c.Redirect(http.StatusSeeOther, "/order?error=delivery")
		return
	}

	c.Redirect(http.StatusSeeOther, "/order")
}

// Summary handles GET /api/checkout/summary
func (h *CheckoutHandler) Summary(c *gin.Context) {
	sess := h.session(c)
	totals := sess.Totals()

	c.JSON(http.StatusOK, gin.H{
		"step":       int(sess.Step()),
		"item_count": sess.Cart.TotalItemCount(),
		"lines":      sess.Cart.Lines(),
		"subtotal":   totals.Subtotal,
		"shipping":   totals.Shipping,
		"total":      totals.Total,
	})
}

// PaymentSync handles POST /api/checkout/payment/sync: pushes the current
// total into the payment coordinator and reports its state. Blocked states
// (below minimum, sync in flight, processor down) are reported, not errors.
func (h *CheckoutHandler) PaymentSync(c *gin.Context) {
	sess := h.session(c)

	if sess.Step() != checkout.StepPayment {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Not on the payment step",
		})
		return
	}

	state := sess.SyncPayment(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"ready":         state.Ready,
		"client_secret": state.ClientSecret,
		"message":       state.Message,
		"amount":        state.Amount,
	})
}
