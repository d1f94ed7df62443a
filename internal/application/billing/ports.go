package billing

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// ReceiptPDFGenerator genera la representación PDF de un comprobante.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
