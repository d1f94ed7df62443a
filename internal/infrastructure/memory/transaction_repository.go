package memory

import (
	"context"
	"sort"

	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación en memoria del puerto TransactionRepository.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Create persiste una nueva transacción.
func (r *TransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.transactions[tx.ID]; ok {
		return domain.ErrInvalidInput
	}
	r.store.transactions[tx.ID] = cloneTx(tx)
	return nil
}

// GetByID obtiene una transacción por id, o nil si no existe.
func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return cloneTx(r.store.transactions[id]), nil
}

// Update persiste los campos mutables sin tocar el estado.
func (r *TransactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.transactions[tx.ID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	next := cloneTx(tx)
	next.Status = current.Status // el estado solo cambia vía UpdateStatus
	r.store.transactions[tx.ID] = next
	return nil
}

// UpdateStatus escritura condicional del estado: si el actual no coincide con
// expected devuelve ErrStaleWrite (mismo contrato que el UPDATE ... WHERE de
// PostgreSQL).
func (r *TransactionRepo) UpdateStatus(_ context.Context, id string, expected, next entity.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if current.Status != expected {
		return domain.ErrStaleWrite
	}
	current.Status = next
	return nil
}

// ListBySeller lista por seller, más recientes primero.
func (r *TransactionRepo) ListBySeller(_ context.Context, sellerID string, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(func(t *entity.Transaction) bool {
		return t.SellerID == sellerID
	}, limit, offset)
}

// ListByBuyer lista por buyer, con fallback por teléfono para invitados.
func (r *TransactionRepo) ListByBuyer(_ context.Context, buyerID, buyerPhone string, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(func(t *entity.Transaction) bool {
		if buyerID != "" && t.BuyerID == buyerID {
			return true
		}
		return buyerPhone != "" && t.BuyerPhone == buyerPhone
	}, limit, offset)
}

// ListByAgent lista las asignadas a un agente.
func (r *TransactionRepo) ListByAgent(_ context.Context, agentID string, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(func(t *entity.Transaction) bool {
		return t.AssignedAgentID == agentID
	}, limit, offset)
}

// ListByStatus lista por estado.
func (r *TransactionRepo) ListByStatus(_ context.Context, status entity.Status, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(func(t *entity.Transaction) bool {
		return t.Status == status
	}, limit, offset)
}

func (r *TransactionRepo) list(match func(*entity.Transaction) bool, limit, offset int) ([]*entity.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var all []*entity.Transaction
	for _, t := range r.store.transactions {
		if match(t) {
			all = append(all, cloneTx(t))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
