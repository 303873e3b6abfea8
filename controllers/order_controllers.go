package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// GetOrders lists the caller's own orders.
func (oc *OrderController) GetOrders(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Your orders", oc.orders.GetOrders(c.Request.Context()))
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.OrderInput
	if !bindJSON(c, &input) {
		return
	}
	respondResult(c, oc.orders.CreateOrder(c.Request.Context(), input), http.StatusCreated)
}

// GetAllOrders lists every order for the admin dashboard.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.orders.GetAllOrders(c.Request.Context())
	if err != nil {
		respondEnvelopeError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All orders", orders)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if !bindJSON(c, &body) {
		return
	}
	respondResult(c, oc.orders.UpdateOrderStatus(c.Request.Context(), id, body.Status), http.StatusOK)
}
