package entity

import "time"

// NotificationType etiqueta el destinatario lógico del aviso.
type NotificationType string

const (
	NotificationSeller NotificationType = "seller"
	NotificationBuyer  NotificationType = "buyer"
	NotificationAdmin  NotificationType = "admin"
	NotificationAgent  NotificationType = "agent"
)

// AllAdminsUserID es el destinatario sentinela "todos los administradores".
const AllAdminsUserID = "__ADMIN__"

// Ventana de deduplicación y tope de retención por usuario.
const (
	NotificationDedupWindow = 60 * time.Second
	MaxNotificationsPerUser = 10
)

// Notification es un aviso entregado como máximo una vez a un usuario sobre
// un evento de una transacción. Solo muta su flag de lectura.
type Notification struct {
	ID            string
	UserID        string
	TransactionID string
	Type          NotificationType
	Message       string
	Read          bool
	CreatedAt     time.Time
}
