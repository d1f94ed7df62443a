package memory

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/application/escrow"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ escrow.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback contra los repos del store. No hay rollback:
// el backend en memoria es para desarrollo y tests, la atomicidad real vive
// en el adaptador PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run invoca fn con los repositorios atados al store.
func (r *TxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	notifRepo repository.NotificationRepository,
	counterRepo repository.CounterRepository,
) error) error {
	return fn(
		NewTransactionRepository(r.store),
		NewNotificationRepository(r.store),
		NewCounterRepository(r.store),
	)
}
