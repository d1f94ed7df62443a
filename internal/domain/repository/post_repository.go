package repository

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// PostRepository define el puerto de persistencia para Post (listings).
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Post, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Post, error)
}
