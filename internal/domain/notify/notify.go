// Package notify calcula el fan-out de notificaciones ante un cambio de
// estado de una transacción. Puro: la persistencia (dedup, tope por usuario)
// vive en el repositorio de notificaciones.
package notify

import "github.com/prolist-cm/protect-api/internal/domain/entity"

// StatusNotification es un aviso pendiente de persistir.
type StatusNotification struct {
	UserID  string
	Type    entity.NotificationType
	Message string
}

// ForStatusChange devuelve los avisos a crear cuando tx pasa a newStatus.
// Solo se avisa a las partes que NO causaron el cambio (actingUserID).
func ForStatusChange(tx *entity.Transaction, newStatus entity.Status, actingUserID string) []StatusNotification {
	var out []StatusNotification

	if tx.SellerID != "" && tx.SellerID != actingUserID {
		switch newStatus {
		case entity.StatusEscrowHeld:
			out = append(out, StatusNotification{
				UserID:  tx.SellerID,
				Type:    entity.NotificationSeller,
				Message: "Secure payment received — prepare for delivery.",
			})
		case entity.StatusAtProlistHub:
			out = append(out, StatusNotification{
				UserID:  tx.SellerID,
				Type:    entity.NotificationSeller,
				Message: "Item received at ProList Hub.",
			})
		case entity.StatusCompleted:
			out = append(out, StatusNotification{
				UserID:  tx.SellerID,
				Type:    entity.NotificationSeller,
				Message: "Buyer confirmed delivery — payment released securely.",
			})
		}
	}

	if tx.BuyerID != "" && tx.BuyerID != actingUserID {
		switch newStatus {
		case entity.StatusOutForDelivery:
			out = append(out, StatusNotification{
				UserID:  tx.BuyerID,
				Type:    entity.NotificationBuyer,
				Message: "Your item is out for delivery.",
			})
		case entity.StatusDeliveredAwaiting:
			out = append(out, StatusNotification{
				UserID:  tx.BuyerID,
				Type:    entity.NotificationBuyer,
				Message: "Item delivered — please confirm you received it.",
			})
		}
	}

	// Todos los admins: una sola fila sentinela, fusionada al consultar.
	if newStatus == entity.StatusInTransitToHub {
		out = append(out, StatusNotification{
			UserID:  entity.AllAdminsUserID,
			Type:    entity.NotificationAdmin,
			Message: "New item in transit — update when received at hub.",
		})
	}

	if tx.AssignedAgentID != "" && newStatus == entity.StatusOutForDelivery {
		out = append(out, StatusNotification{
			UserID:  tx.AssignedAgentID,
			Type:    entity.NotificationAgent,
			Message: "New delivery assigned to you.",
		})
	}

	return out
}
