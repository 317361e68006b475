package controllers

import (
	"net/http"

	"torget-app-io/api/pkg/services"
	"torget-app-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderController struct {
	orders *services.OrderService
}

func InitOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// GetOrders handles GET /orders
func (oc *OrderController) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		pagination := GetPaginationArgs(c)
		orders, count, err := oc.orders.GetOrders(ctx, sessionID, pagination)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", orders, util.Pagination{
			Limit: pagination.Limit,
			Skip:  pagination.Skip,
			Count: count,
		})
	}
}

// GetOrder handles GET /orders/:orderid
func (oc *OrderController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		sessionID, err := SessionID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("orderid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		order, err := oc.orders.GetOrder(ctx, sessionID, orderID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", order)
	}
}
