package repository

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	// Save inserta el aviso aplicando deduplicación: si ya existe uno con el
	// mismo (userId, message) dentro de la ventana de 60 s devuelve el
	// existente en lugar de duplicar. Tras insertar, recorta al tope por
	// usuario expulsando los más antiguos (FIFO).
	Save(ctx context.Context, n *entity.Notification) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, ids []string) error
	MarkAsReadByType(ctx context.Context, userID string, typ entity.NotificationType) error
	MarkAllAsRead(ctx context.Context, userID string) error
}
