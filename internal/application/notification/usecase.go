// Package notification casos de uso de consulta y lectura de avisos.
package notification

import (
	"context"

	"github.com/prolist-cm/protect-api/internal/application/dto"
	"github.com/prolist-cm/protect-api/internal/domain"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
)

// NotificationUseCase consulta y marcado de avisos por usuario.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// List devuelve los avisos del usuario. Para admins incluye además los
// dirigidos al sentinela "todos los administradores".
func (uc *NotificationUseCase) List(ctx context.Context, user *entity.User, page dto.PageRequest) ([]*entity.Notification, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.notifRepo.ListByUser(ctx, user.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if user.HasRole(entity.RoleAdmin) {
		adminList, err := uc.notifRepo.ListByUser(ctx, entity.AllAdminsUserID, page.Limit, 0)
		if err != nil {
			return nil, err
		}
		list = append(list, adminList...)
	}
	return list, nil
}

// UnreadCount devuelve la cantidad de avisos sin leer.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, user *entity.User) (int, error) {
	if user == nil {
		return 0, domain.ErrUnauthorized
	}
	count, err := uc.notifRepo.UnreadCount(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	if user.HasRole(entity.RoleAdmin) {
		adminCount, err := uc.notifRepo.UnreadCount(ctx, entity.AllAdminsUserID)
		if err != nil {
			return 0, err
		}
		count += adminCount
	}
	return count, nil
}

// MarkAsRead marca como leídos los avisos indicados del usuario.
func (uc *NotificationUseCase) MarkAsRead(ctx context.Context, user *entity.User, ids []string) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.notifRepo.MarkAsRead(ctx, user.ID, ids); err != nil {
		return err
	}
	if user.HasRole(entity.RoleAdmin) {
		return uc.notifRepo.MarkAsRead(ctx, entity.AllAdminsUserID, ids)
	}
	return nil
}

// MarkAsReadByType marca como leídos los avisos del usuario de un tipo dado.
func (uc *NotificationUseCase) MarkAsReadByType(ctx context.Context, user *entity.User, typ entity.NotificationType) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	switch typ {
	case entity.NotificationSeller, entity.NotificationBuyer, entity.NotificationAdmin, entity.NotificationAgent:
	default:
		return domain.ErrInvalidInput
	}
	if err := uc.notifRepo.MarkAsReadByType(ctx, user.ID, typ); err != nil {
		return err
	}
	if user.HasRole(entity.RoleAdmin) {
		return uc.notifRepo.MarkAsReadByType(ctx, entity.AllAdminsUserID, typ)
	}
	return nil
}

// MarkAllAsRead marca todos los avisos del usuario como leídos.
func (uc *NotificationUseCase) MarkAllAsRead(ctx context.Context, user *entity.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	if err := uc.notifRepo.MarkAllAsRead(ctx, user.ID); err != nil {
		return err
	}
	if user.HasRole(entity.RoleAdmin) {
		return uc.notifRepo.MarkAllAsRead(ctx, entity.AllAdminsUserID)
	}
	return nil
}
