// internal/interfaces/http/handlers/checkout_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmeals/web/internal/config"
	"github.com/freshmeals/web/internal/domain/checkout"
	"github.com/freshmeals/web/internal/domain/payment"
)

func testCheckoutConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Fresh Meals"
	cfg.Delivery.FreeThreshold = 7500
	cfg.Delivery.FlatFee = 800
	return cfg
}

func newCheckoutRouter() (*gin.Engine, *checkout.Registry) {
	gin.SetMode(gin.TestMode)

	cfg := testCheckoutConfig()
	rules := checkout.FeeRules{FreeThreshold: cfg.Delivery.FreeThreshold, FlatFee: cfg.Delivery.FlatFee}
	registry := checkout.NewRegistry(rules, func(string) *payment.Coordinator { return nil })
	handler := NewCheckoutHandler(registry, cfg)

	router := gin.New()
	api := router.Group("/api/checkout")
	{
		api.POST("/items/:id", handler.SetItem)
		api.POST("/next", handler.Next)
		api.POST("/back", handler.Back)
		api.POST("/delivery", handler.Delivery)
		api.GET("/summary", handler.Summary)
		api.POST("/payment/sync", handler.PaymentSync)
	}
	return router, registry
}

// client keeps the checkout session cookie across requests, like a browser
type checkoutClient struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newCheckoutClient(t *testing.T, router *gin.Engine) *checkoutClient {
	return &checkoutClient{t: t, router: router}
}

func (c *checkoutClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == CheckoutSessionCookie {
			c.cookie = ck
		}
	}
	return w
}

func (c *checkoutClient) summary() map[string]any {
	w := c.do(http.MethodGet, "/api/checkout/summary", nil)
	require.Equal(c.t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCheckoutSessionCookieIsStable(t *testing.T) {
	router, registry := newCheckoutRouter()
	client := newCheckoutClient(t, router)

	client.do(http.MethodGet, "/api/checkout/summary", nil)
	require.NotNil(t, client.cookie)
	first := client.cookie.Value

	client.do(http.MethodGet, "/api/checkout/summary", nil)
	assert.Equal(t, first, client.cookie.Value)

	_, ok := registry.Get(first)
	assert.True(t, ok)
}

func TestCheckoutItemMutations(t *testing.T) {
	router, _ := newCheckoutRouter()
	client := newCheckoutClient(t, router)

	w := client.do(http.MethodPost, "/api/checkout/items/garden-harvest-bowl", url.Values{"action": {"incr"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/order", w.Header().Get("Location"))

	client.do(http.MethodPost, "/api/checkout/items/garden-harvest-bowl", url.Values{"quantity": {"3"}})

	resp := client.summary()
	assert.Equal(t, float64(3), resp["item_count"])
	// 3 x 1450 below the free threshold picks up the flat fee
	assert.Equal(t, float64(4350), resp["subtotal"])
	assert.Equal(t, float64(800), resp["shipping"])
	assert.Equal(t, float64(5150), resp["total"])

	// Negative quantities clamp to zero
	client.do(http.MethodPost, "/api/checkout/items/garden-harvest-bowl", url.Values{"quantity": {"-2"}})
	resp = client.summary()
	assert.Equal(t, float64(0), resp["item_count"])
}

func TestCheckoutNextWithEmptyCartRedirectsWithError(t *testing.T) {
	router, _ := newCheckoutRouter()
	client := newCheckoutClient(t, router)

	w := client.do(http.MethodPost, "/api/checkout/next", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/order?error=empty-cart", w.Header().Get("Location"))

	resp := client.summary()
	assert.Equal(t, float64(1), resp["step"])
}

func TestCheckoutDeliveryGate(t *testing.T) {
	router, _ := newCheckoutRouter()
	client := newCheckoutClient(t, router)

	client.do(http.MethodPost, "/api/checkout/items/garden-harvest-bowl", url.Values{"action": {"incr"}})
	client.do(http.MethodPost, "/api/checkout/next", url.Values{})
	assert.Equal(t, float64(2), client.summary()["step"])

	// Incomplete details are stored but do not advance the flow
	w := client.do(http.MethodPost, "/api/checkout/delivery", url.Values{"name": {"Maya"}})
	assert.Equal(t, "/order?error=delivery", w.Header().Get("Location"))
	assert.Equal(t, float64(2), client.summary()["step"])

	w = client.do(http.MethodPost, "/api/checkout/delivery", url.Values{
		"name":           {"Maya"},
		"address1":       {"1 Main St"},
		"city":           {"Springfield"},
		"zip":            {"12345"},
		"phone":          {"555-0101"},
		"deliveryWindow": {"evening"},
	})
	assert.Equal(t, "/order", w.Header().Get("Location"))
	assert.Equal(t, float64(3), client.summary()["step"])
}

func TestCheckoutBack(t *testing.T) {
	router, _ := newCheckoutRouter()
	client := newCheckoutClient(t, router)

	client.do(http.MethodPost, "/api/checkout/items/garden-harvest-bowl", url.Values{"action": {"incr"}})
	client.do(http.MethodPost, "/api/checkout/next", url.Values{})

	w := client.do(http.MethodPost, "/api/checkout/back", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, float64(1), client.summary()["step"])

	// Back at the first step stays put
	client.do(http.MethodPost, "/api/checkout/back", url.Values{})
	assert.Equal(t, float64(1), client.summary()["step"])
}

func TestCheckoutPaymentSyncOffPaymentStep(t *testing.T) {
	router, _ := newCheckoutRouter()
	client := newCheckoutClient(t, router)

	w := client.do(http.MethodPost, "/api/checkout/payment/sync", url.Values{})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutPaymentSyncWithoutProcessor(t *testing.T) {
	router, _ := newCheckoutRouter()
	client := newCheckoutClient(t, router)

	client.do(http.MethodPost, "/api/checkout/items/garden-harvest-bowl", url.Values{"action": {"incr"}})
	client.do(http.MethodPost, "/api/checkout/next", url.Values{})
	client.do(http.MethodPost, "/api/checkout/delivery", url.Values{
		"name":     {"Maya"},
		"address1": {"1 Main St"},
		"city":     {"Springfield"},
		"zip":      {"12345"},
		"phone":    {"555-0101"},
	})

	w := client.do(http.MethodPost, "/api/checkout/payment/sync", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ready"])
	assert.NotEmpty(t, resp["message"])
}
