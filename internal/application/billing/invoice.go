// Package billing emite el comprobante de una transacción completada:
// consecutivo PL-YYYY-SEQ desde un contador atómico y representación PDF.
package billing

import (
	"fmt"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// FormatInvoiceNumber arma el consecutivo PL-YYYY-SEQ (ej. PL-2026-000123).
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", entity.InvoiceNumberPrefix, year, seq)
}

// BuildInvoice deriva el comprobante desde una transacción completada.
// El número ya debe estar asignado (se fija al confirmar, junto al estado).
func BuildInvoice(tx *entity.Transaction) *entity.Invoice {
	buyerName := tx.BuyerName
	if buyerName == "" {
		buyerName = "Unknown Buyer"
	}
	inv := &entity.Invoice{
		InvoiceNumber: tx.InvoiceNumber,
		TransactionID: tx.ID,
		PostID:        tx.PostID,
		SellerName:    tx.SellerName,
		SellerPhone:   tx.SellerPhone,
		SellerCity:    tx.DeliveryLocation,
		BuyerName:     buyerName,
		BuyerPhone:    tx.BuyerPhone,
		BuyerCity:     tx.DeliveryLocation,
		ItemTitle:     tx.ProductName,
		ItemPrice:     tx.Price,
		DeliveryFee:   tx.DeliveryFee,
		Total:         tx.Total(),
		IsPreOrder:    tx.IsPreOrder,
	}
	if tx.CompletedAt != nil {
		inv.IssuedAt = *tx.CompletedAt
	}
	return inv
}
