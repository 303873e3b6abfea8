package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// CreatePaymentIntent answers {clientSecret} or {error}.
func (pc *PaymentController) CreatePaymentIntent(c *gin.Context) {
	if _, ok := services.SessionFromContext(c.Request.Context()); !ok {
		respondActionError(c, services.ErrUnauthorized)
		return
	}

	var req services.PaymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := pc.payments.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
