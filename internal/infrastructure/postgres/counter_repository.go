package postgres

import (
	"context"
	"fmt"

	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo implementación del puerto CounterRepository sobre PostgreSQL (usable con pool o tx).
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve la secuencia en una sola sentencia: el upsert
// con RETURNING es atómico, dos transacciones nunca reciben el mismo valor.
func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`,
		name,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next counter %s: %w", name, err)
	}
	return value, nil
}
