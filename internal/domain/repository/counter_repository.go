package repository

import "context"

// CounterRepository define el puerto para secuencias con nombre (ej. el
// consecutivo de facturas). Next debe ser un read-increment-write atómico en
// el almacenamiento, nunca un contador en memoria del proceso.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
