package repository

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ListByRole lista usuarios con un rol dado (ej. agentes para asignación).
	ListByRole(ctx context.Context, role entity.Role, limit, offset int) ([]*entity.User, error)
}
