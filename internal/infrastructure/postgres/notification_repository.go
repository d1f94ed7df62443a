package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL (usable con pool o tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notifColumns = `
	id, user_id, transaction_id, type, message, read, created_at`

// Save inserta el aviso con deduplicación y tope por usuario. Si existe uno
// con el mismo (user_id, message) dentro de la ventana devuelve el existente;
// tras insertar, expulsa los más viejos del usuario por encima del tope.
func (r *NotificationRepo) Save(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	existing, err := r.findRecent(ctx, n)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	_, err = r.q.Exec(ctx,
		`INSERT INTO notifications (`+notifColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.TransactionID, string(n.Type), n.Message, n.Read, n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	_, err = r.q.Exec(ctx, `
		DELETE FROM notifications
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
		)`,
		n.UserID, entity.MaxNotificationsPerUser,
	)
	if err != nil {
		return nil, fmt.Errorf("trim notifications: %w", err)
	}
	return n, nil
}

func (r *NotificationRepo) findRecent(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	query := `
		SELECT ` + notifColumns + ` FROM notifications
		WHERE user_id = $1 AND message = $2 AND created_at > $3
		ORDER BY created_at DESC LIMIT 1`
	cutoff := n.CreatedAt.Add(-entity.NotificationDedupWindow)
	existing, err := scanNotification(r.q.QueryRow(ctx, query, n.UserID, n.Message, cutoff))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find recent notification: %w", err)
	}
	return existing, nil
}

// ListByUser lista los avisos de un usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+notifColumns+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// UnreadCount devuelve la cantidad de avisos sin leer de un usuario.
func (r *NotificationRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1 AND read = false`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marca como leídos los avisos indicados del usuario.
func (r *NotificationRepo) MarkAsRead(ctx context.Context, userID string, ids []string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND id = ANY($2)`,
		userID, ids,
	)
	if err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

// MarkAsReadByType marca como leídos los avisos del usuario de un tipo dado.
func (r *NotificationRepo) MarkAsReadByType(ctx context.Context, userID string, typ entity.NotificationType) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND type = $2`,
		userID, string(typ),
	)
	if err != nil {
		return fmt.Errorf("mark notifications read by type: %w", err)
	}
	return nil
}

// MarkAllAsRead marca todos los avisos del usuario como leídos.
func (r *NotificationRepo) MarkAllAsRead(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1`, userID,
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	var typ string
	err := row.Scan(&n.ID, &n.UserID, &n.TransactionID, &typ, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	n.Type = entity.NotificationType(typ)
	return &n, nil
}
