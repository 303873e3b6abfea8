package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

type ReceiptController struct {
	orders *services.OrderService
}

func NewReceiptController(orders *services.OrderService) *ReceiptController {
	return &ReceiptController{orders: orders}
}

// DownloadReceipt streams the PDF receipt of an order to its owner or an admin.
func (rc *ReceiptController) DownloadReceipt(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	order, err := rc.orders.GetOrderForReceipt(c.Request.Context(), id)
	if err != nil {
		respondEnvelopeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.RenderReceipt(order, &buf); err != nil {
		utils.ErrorLogger.WithError(err).WithField("order_id", id).Error("Rendering receipt failed")
		utils.RespondError(c, http.StatusInternalServerError, services.ErrSomethingWentWrong)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, order.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
