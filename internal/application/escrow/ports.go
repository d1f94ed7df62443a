package escrow

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el cambio de estado, sus
// notificaciones y el consecutivo de factura se confirman juntos o no se
// confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		notifRepo repository.NotificationRepository,
		counterRepo repository.CounterRepository,
	) error) error
}
