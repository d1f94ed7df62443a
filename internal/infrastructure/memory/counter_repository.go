package memory

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo implementación en memoria del puerto CounterRepository.
type CounterRepo struct {
	store *Store
}

// NewCounterRepository construye el adaptador.
func NewCounterRepository(store *Store) *CounterRepo {
	return &CounterRepo{store: store}
}

// Next incrementa y devuelve el contador bajo el mutex del store: dos
// llamadas concurrentes nunca observan el mismo valor.
func (r *CounterRepo) Next(_ context.Context, name string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.counters[name]++
	return r.store.counters[name], nil
}
