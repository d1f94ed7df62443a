package repository

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction (DIP).
// Las transacciones nunca se borran: quedan como registro histórico.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// Update persiste todos los campos mutables (partes, logística, códigos).
	Update(ctx context.Context, tx *entity.Transaction) error
	// UpdateStatus escribe el nuevo estado de forma condicional
	// (WHERE id = $1 AND status = expected). Si el estado cambió desde la
	// lectura devuelve domain.ErrStaleWrite: nada de lost updates.
	UpdateStatus(ctx context.Context, id string, expected, next entity.Status) error
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Transaction, error)
	ListByBuyer(ctx context.Context, buyerID, buyerPhone string, limit, offset int) ([]*entity.Transaction, error)
	ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*entity.Transaction, error)
	ListByStatus(ctx context.Context, status entity.Status, limit, offset int) ([]*entity.Transaction, error)
}
