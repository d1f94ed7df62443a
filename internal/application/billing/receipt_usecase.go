package billing

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/permission"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

// ReceiptUseCase entrega el comprobante de una transacción completada.
type ReceiptUseCase struct {
	txRepo repository.TransactionRepository
	pdf    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(txRepo repository.TransactionRepository, pdf ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{txRepo: txRepo, pdf: pdf}
}

// Invoice devuelve el comprobante de la transacción si el usuario puede verla
// y la transacción está completada con número emitido.
func (uc *ReceiptUseCase) Invoice(ctx context.Context, user *entity.User, txID string) (*entity.Invoice, error) {
	tx, err := uc.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}
	if !permission.CanViewTransaction(user, tx) {
		return nil, domain.ErrForbidden
	}
	if tx.Status != entity.StatusCompleted || tx.InvoiceNumber == "" {
		return nil, domain.ErrNotFound
	}
	return BuildInvoice(tx), nil
}

// InvoicePDF genera los bytes PDF del comprobante.
func (uc *ReceiptUseCase) InvoicePDF(ctx context.Context, user *entity.User, txID string) ([]byte, error) {
	inv, err := uc.Invoice(ctx, user, txID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReceiptPDF(ctx, inv)
}
