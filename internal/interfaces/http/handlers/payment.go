// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshmeals/web/internal/config"
	"github.com/freshmeals/web/internal/domain/order"
	"github.com/freshmeals/web/internal/domain/payment"
	"github.com/freshmeals/web/internal/domain/summary"
)

// PaymentHandler exposes the order intake endpoint and the banner summary
type PaymentHandler struct {
	intake    *payment.IntakeService
	summaries *summary.MemoryStore
	config    *config.Config
	log       *logrus.Logger
}

// NewPaymentHandler creates a payment handler
func NewPaymentHandler(intake *payment.IntakeService, summaries *summary.MemoryStore, cfg *config.Config, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		intake:    intake,
		summaries: summaries,
		config:    cfg,
		log:       log,
	}
}

// amountValue accepts a JSON number or a numeric string; anything else
// fails to parse
type amountValue struct {
	value float64
	ok    bool
}

func (a *amountValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		a.value = num
		a.ok = true
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if num, err := strconv.ParseFloat(raw, 64); err == nil {
			a.value = num
			a.ok = true
		}
		return nil
	}

	// Leave ok false; validation rejects below
	return nil
}

// createIntentRequest is the explicit input schema for the intake endpoint;
// unrecognized fields are ignored, missing ones take defaults
type createIntentRequest struct {
	Amount   amountValue    `json:"amount"`
	Currency string         `json:"currency"`
	Items    []order.Item   `json:"items"`
	Delivery order.Delivery `json:"delivery"`
	Notes    string         `json:"notes"`
}

// CreateIntent handles POST /api/payments/create-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	if !h.intake.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Payments unavailable: processor not configured.",
		})
		return
	}

	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body.",
		})
		return
	}

	// ParseFloat accepts "Inf"/"Infinity" strings, which would saturate the
	// int64 conversion below
	if !req.Amount.ok || req.Amount.value == 0 || math.IsNaN(req.Amount.value) || math.IsInf(req.Amount.value, 0) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing or invalid amount.",
		})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = h.config.Payment.Currency
	}

	result, err := h.intake.CreateOrderIntent(c.Request.Context(), payment.IntakeRequest{
		Amount:   int64(math.Round(req.Amount.value)),
		Currency: currency,
		Items:    req.Items,
		Delivery: req.Delivery,
		Notes:    req.Notes,
	})
	if err != nil {
		h.log.WithError(err).Error("Payment intent creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Unable to create payment intent.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": result.ClientSecret,
	})
}

// LastSummary handles GET /api/orders/last-summary for the post-redirect
// banner. Summaries are private to the checkout session that produced
// them: no matching session cookie, no summary.
func (h *PaymentHandler) LastSummary(c *gin.Context) {
	token, err := c.Cookie(CheckoutSessionCookie)
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	last, ok := h.summaries.Last(token)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, last)
}
