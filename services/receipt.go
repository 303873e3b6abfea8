package services

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/utils"
)

const receiptStoreName = "FoodieGo"

// RenderReceipt writes a one-page PDF receipt for the order. Item prices
// are the snapshots stored on the order.
func RenderReceipt(order *models.Order, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(fmt.Sprintf("Receipt %s", order.OrderNumber), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, receiptStoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Order "+order.OrderNumber, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, order.CreatedAt.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, 5, "Customer: "+order.CustomerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: "+order.CustomerPhone, "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 5, "Address: "+order.CustomerAddress, "", "L", false)
	if order.Notes != nil && *order.Notes != "" {
		pdf.MultiCell(0, 5, "Notes: "+*order.Notes, "", "L", false)
	}
	pdf.CellFormat(0, 5, "Status: "+string(order.Status), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(64, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(14, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.OrderItems {
		name := fmt.Sprintf("Item #%d", item.MenuItemID)
		if item.MenuItem != nil {
			name = item.MenuItem.Name
		}
		pdf.CellFormat(64, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(14, 6, fmt.Sprint(item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, utils.FormatCurrency(item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, utils.FormatCurrency(item.Subtotal()), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(103, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, utils.FormatCurrency(order.TotalAmount), "T", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Thank you for ordering with "+receiptStoreName+"!", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
