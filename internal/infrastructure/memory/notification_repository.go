package memory

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación en memoria del puerto NotificationRepository.
type NotificationRepo struct {
	store *Store
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(store *Store) *NotificationRepo {
	return &NotificationRepo{store: store}
}

// Save inserta el aviso con deduplicación y tope por usuario: si existe uno
// con el mismo (userId, message) dentro de la ventana devuelve el existente;
// tras insertar, expulsa los más antiguos por encima del tope.
func (r *NotificationRepo) Save(_ context.Context, n *entity.Notification) (*entity.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cutoff := n.CreatedAt.Add(-entity.NotificationDedupWindow)
	for _, existing := range r.store.notifications {
		if existing.UserID == n.UserID && existing.Message == n.Message && existing.CreatedAt.After(cutoff) {
			return cloneNotif(existing), nil
		}
	}

	r.store.notifications = append([]*entity.Notification{cloneNotif(n)}, r.store.notifications...)

	// Recorte FIFO: conserva los MaxNotificationsPerUser más recientes.
	kept := r.store.notifications[:0]
	count := 0
	for _, existing := range r.store.notifications {
		if existing.UserID != n.UserID {
			kept = append(kept, existing)
			continue
		}
		if count < entity.MaxNotificationsPerUser {
			kept = append(kept, existing)
			count++
		}
	}
	r.store.notifications = kept
	return cloneNotif(n), nil
}

// ListByUser lista los avisos de un usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var all []*entity.Notification
	for _, n := range r.store.notifications {
		if n.UserID == userID {
			all = append(all, cloneNotif(n))
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// UnreadCount devuelve la cantidad de avisos sin leer de un usuario.
func (r *NotificationRepo) UnreadCount(_ context.Context, userID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	count := 0
	for _, n := range r.store.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkAsRead marca como leídos los avisos indicados del usuario.
func (r *NotificationRepo) MarkAsRead(_ context.Context, userID string, ids []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for _, n := range r.store.notifications {
		if n.UserID == userID && wanted[n.ID] {
			n.Read = true
		}
	}
	return nil
}

// MarkAsReadByType marca como leídos los avisos del usuario de un tipo dado.
func (r *NotificationRepo) MarkAsReadByType(_ context.Context, userID string, typ entity.NotificationType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, n := range r.store.notifications {
		if n.UserID == userID && n.Type == typ {
			n.Read = true
		}
	}
	return nil
}

// MarkAllAsRead marca todos los avisos del usuario como leídos.
func (r *NotificationRepo) MarkAllAsRead(_ context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, n := range r.store.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}
