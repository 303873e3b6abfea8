package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

type AdminController struct {
	orders *services.OrderService
}

func NewAdminController(orders *services.OrderService) *AdminController {
	return &AdminController{orders: orders}
}

// GetDashboardStats mengambil statistik untuk dashboard
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.orders.GetOrderStats(c.Request.Context())
	if err != nil {
		respondEnvelopeError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard statistics", stats)
}
