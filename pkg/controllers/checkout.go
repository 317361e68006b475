package controllers

import (
	"net/http"

	"torget-app-io/api/internal"
	"torget-app-io/api/pkg/models"
	"torget-app-io/api/pkg/services"
	"torget-app-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type CheckoutController struct {
	carts    *services.CartService
	registry *services.CheckoutRegistry
	orders   *services.OrderService
	notifier *internal.Notifier
}

func InitCheckoutController(carts *services.CartService, registry *services.CheckoutRegistry, orders *services.OrderService, notifier *internal.Notifier) *CheckoutController {
	return &CheckoutController{carts: carts, registry: registry, orders: orders, notifier: notifier}
}

type checkoutState struct {
	Step     models.CheckoutStep  `json:"step"`
	Shipping *models.ShippingInfo `json:"shipping,omitempty"`
	Pricing  models.OrderPricing  `json:"pricing"`
}

func stateOf(flow *services.CheckoutFlow) checkoutState {
	return checkoutState{
		Step:     flow.Step(),
		Shipping: flow.ShippingInfo(),
		Pricing:  flow.Pricing(),
	}
}

// BeginCheckout handles POST /checkout. An empty cart is refused; the
// storefront redirects to the cart page.
func (cc *CheckoutController) BeginCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		store, err := cc.carts.StoreFor(ctx, sessionID)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		flow, err := cc.registry.Begin(sessionID, store, cc.orders)
		if err != nil {
			util.HandleError(c, http.StatusConflict, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Checkout started", stateOf(flow))
	}
}

// GetCheckout handles GET /checkout
func (cc *CheckoutController) GetCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		flow, err := cc.registry.Get(sessionID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", stateOf(flow))
	}
}

// SubmitShipping handles PUT /checkout/shipping
func (cc *CheckoutController) SubmitShipping() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		flow, err := cc.registry.Get(sessionID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		var info models.ShippingInfo
		if err := c.ShouldBindJSON(&info); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := flow.SubmitShipping(info); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Shipping saved", stateOf(flow))
	}
}

// SubmitPayment handles PUT /checkout/payment
func (cc *CheckoutController) SubmitPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		flow, err := cc.registry.Get(sessionID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		var info models.PaymentInfo
		if err := c.ShouldBindJSON(&info); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := flow.SubmitPayment(info); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Payment saved", stateOf(flow))
	}
}

// StepBack handles PUT /checkout/back. Exiting from the shipping step ends
// the session; entered data is discarded while the cart stays persisted.
func (cc *CheckoutController) StepBack() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		flow, err := cc.registry.Get(sessionID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		if exited := flow.Back(); exited {
			cc.registry.Abandon(sessionID)
			util.HandleSuccess(c, http.StatusOK, "Checkout exited", gin.H{"exited": true})
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Moved back", stateOf(flow))
	}
}

// AbandonCheckout handles DELETE /checkout
func (cc *CheckoutController) AbandonCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cc.registry.Abandon(sessionID)
		util.HandleSuccess(c, http.StatusOK, "Checkout abandoned", nil)
	}
}

// PlaceOrder handles POST /checkout/order. On success the cart is cleared and
// the session ends; on failure the flow stays in review for retry.
func (cc *CheckoutController) PlaceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		flow, err := cc.registry.Get(sessionID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		order, err := flow.PlaceOrder(ctx)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, services.ErrInvalidStep) || errors.Is(err, services.ErrCheckoutCompleted) || errors.Is(err, services.ErrEmptyCart) || errors.Is(err, services.ErrOrderInFlight) {
				status = http.StatusConflict
			}
			util.HandleError(c, status, err)
			return
		}

		store, err := cc.carts.StoreFor(ctx, sessionID)
		if err == nil {
			if clearErr := store.Clear(ctx); clearErr != nil {
				util.LogError("failed to clear cart after order", clearErr)
			}
		}
		cc.registry.Abandon(sessionID)

		cc.notifier.Publish(ctx, internal.EventOrderPlaced, order.OrderNumber)
		util.HandleSuccess(c, http.StatusCreated, "Order placed", order)
	}
}
