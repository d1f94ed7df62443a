package dto

import "time"

// NotificationResponse aviso para el usuario.
type NotificationResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

// MarkReadRequest ids de avisos a marcar como leídos.
type MarkReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// MarkReadByTypeRequest tipo de avisos a marcar como leídos.
type MarkReadByTypeRequest struct {
	Type string `json:"type" validate:"required,oneof=seller buyer admin agent"`
}
