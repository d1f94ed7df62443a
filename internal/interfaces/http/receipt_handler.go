package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/prolist-cm/protect-api/internal/application/billing"
)

// ReceiptHandler entrega el comprobante de una transacción completada.
type ReceiptHandler struct {
	uc *billing.ReceiptUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *billing.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Get devuelve el comprobante en JSON.
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	inv, err := h.uc.Invoice(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(inv)
}

// GetPDF descarga el comprobante como PDF.
func (h *ReceiptHandler) GetPDF(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	inv, err := h.uc.Invoice(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	pdfBytes, err := h.uc.InvoicePDF(c.Context(), user, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, inv.InvoiceNumber))
	return c.Send(pdfBytes)
}
