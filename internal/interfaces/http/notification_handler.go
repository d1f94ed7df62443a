package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prolist-cm/protect-api/internal/application/dto"
	"github.com/prolist-cm/protect-api/internal/application/notification"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
)

// NotificationHandler maneja consulta y lectura de avisos.
type NotificationHandler struct {
	uc *notification.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List lista los avisos del usuario (admins incluyen los del sentinela).
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	list, err := h.uc.List(c.Context(), user, pageFromQuery(c))
	if err != nil {
		return mapError(c, err)
	}
	out := make([]*dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return c.JSON(out)
}

// UnreadCount devuelve la cantidad de avisos sin leer.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	count, err := h.uc.UnreadCount(c.Context(), user)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// MarkRead marca como leídos los avisos indicados.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	var in dto.MarkReadRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.MarkAsRead(c.Context(), user, in.IDs); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkReadByType marca como leídos los avisos de un tipo.
func (h *NotificationHandler) MarkReadByType(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	var in dto.MarkReadByTypeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.MarkAsReadByType(c.Context(), user, entity.NotificationType(in.Type)); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead marca todos los avisos como leídos.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	if err := h.uc.MarkAllAsRead(c.Context(), user); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:            n.ID,
		TransactionID: n.TransactionID,
		Type:          string(n.Type),
		Message:       n.Message,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}
