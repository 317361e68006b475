package controllers

import (
	"net/http"

	"torget-app-io/api/internal"
	"torget-app-io/api/pkg/models"
	"torget-app-io/api/pkg/services"
	"torget-app-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts    *services.CartService
	notifier *internal.Notifier
}

func InitCartController(carts *services.CartService, notifier *internal.Notifier) *CartController {
	return &CartController{carts: carts, notifier: notifier}
}

type cartLineRequest struct {
	ProductId string                  `json:"productId" binding:"required"`
	Variant   models.VariantSelection `json:"variant,omitempty"`
	Quantity  int                     `json:"quantity"`
}

// SaveCartItem handles POST /cart/items
func (cc *CartController) SaveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		var req models.CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		store, err := cc.carts.StoreFor(ctx, sessionID)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		if err := store.AddItem(ctx, req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cc.notifier.Publish(ctx, internal.EventCartUpdated, sessionID)
		util.HandleSuccess(c, http.StatusOK, "Item added to cart", store.Snapshot())
	}
}

// GetCart handles GET /cart
func (cc *CartController) GetCart() gin.HandlerFunc {
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

		util.HandleSuccess(c, http.StatusOK, "success", store.Snapshot())
	}
}

// UpdateCartItemQuantity handles PUT /cart/items
func (cc *CartController) UpdateCartItemQuantity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		var req cartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		store, err := cc.carts.StoreFor(ctx, sessionID)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		if err := store.UpdateQuantity(ctx, req.ProductId, req.Variant, req.Quantity); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cc.notifier.Publish(ctx, internal.EventCartUpdated, sessionID)
		util.HandleSuccess(c, http.StatusOK, "Cart updated", store.Snapshot())
	}
}

// DeleteCartItem handles DELETE /cart/items
func (cc *CartController) DeleteCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		var req cartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		store, err := cc.carts.StoreFor(ctx, sessionID)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		if err := store.RemoveItem(ctx, req.ProductId, req.Variant); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		cc.notifier.Publish(ctx, internal.EventCartUpdated, sessionID)
		util.HandleSuccess(c, http.StatusOK, "Item removed", store.Snapshot())
	}
}

// ClearCart handles DELETE /cart
func (cc *CartController) ClearCart() gin.HandlerFunc {
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

		if err := store.Clear(ctx); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		cc.notifier.Publish(ctx, internal.EventCartCleared, sessionID)
		util.HandleSuccess(c, http.StatusOK, "Cart cleared", store.Snapshot())
	}
}
