package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest abre una solicitud de pago contra un listing.
// Los datos de buyer son opcionales: un invitado solo aporta nombre y teléfono.
type CreateTransactionRequest struct {
	PostID           string          `json:"post_id" validate:"required"`
	BuyerName        string          `json:"buyer_name" validate:"omitempty,max=100"`
	BuyerPhone       string          `json:"buyer_phone" validate:"omitempty,e164"`
	BuyerEmail       string          `json:"buyer_email" validate:"omitempty,email"`
	BuyerCity        string          `json:"buyer_city" validate:"omitempty,max=100"`
	DeliveryLocation string          `json:"delivery_location" validate:"required,max=100"`
	DeliveryArea     string          `json:"delivery_area" validate:"omitempty,max=100"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
}

// ShipRequest datos de dropoff que el seller adjunta al despachar al hub.
type ShipRequest struct {
	DropoffCompany string `json:"dropoff_company" validate:"required,max=100"`
	DropoffCity    string `json:"dropoff_city" validate:"required,max=100"`
	DropoffNote    string `json:"dropoff_note" validate:"omitempty,max=500"`
}

// AssignAgentRequest selección de agente del admin para el último tramo.
type AssignAgentRequest struct {
	AgentID string `json:"agent_id" validate:"required"`
}

// DeliverRequest OTP que el buyer entrega al agente en la puerta.
type DeliverRequest struct {
	OTP string `json:"otp" validate:"required,len=6"`
}

// ConfirmRequest código de confirmación final del buyer.
type ConfirmRequest struct {
	Code string `json:"code" validate:"required"`
}

// ActionResponse acción disponible para el usuario sobre la transacción.
type ActionResponse struct {
	Type       string `json:"type"`
	Label      string `json:"label"`
	WaitingFor string `json:"waiting_for,omitempty"`
}

// LogisticsResponse dropoff del seller.
type LogisticsResponse struct {
	DropoffCompany string `json:"dropoff_company"`
	DropoffCity    string `json:"dropoff_city"`
	DropoffNote    string `json:"dropoff_note,omitempty"`
}

// TransactionResponse representación de una transacción para la UI.
type TransactionResponse struct {
	ID               string             `json:"id"`
	PostID           string             `json:"post_id,omitempty"`
	ProductName      string             `json:"product_name"`
	Price            decimal.Decimal    `json:"price"`
	DeliveryFee      decimal.Decimal    `json:"delivery_fee"`
	Total            decimal.Decimal    `json:"total"`
	SellerID         string             `json:"seller_id"`
	SellerName       string             `json:"seller_name"`
	BuyerID          string             `json:"buyer_id,omitempty"`
	BuyerName        string             `json:"buyer_name,omitempty"`
	BuyerPhone       string             `json:"buyer_phone,omitempty"`
	DeliveryLocation string             `json:"delivery_location"`
	DeliveryArea     string             `json:"delivery_area,omitempty"`
	Logistics        *LogisticsResponse `json:"logistics,omitempty"`
	AssignedAgentID  string             `json:"assigned_agent_id,omitempty"`
	Status           string             `json:"status"`
	StatusLabel      string             `json:"status_label"`
	IsPreOrder       bool               `json:"is_pre_order"`
	PaymentLink      string             `json:"payment_link,omitempty"`
	InvoiceNumber    string             `json:"invoice_number,omitempty"`
	Action           *ActionResponse    `json:"action,omitempty"`
	EscrowHeldAt     *time.Time         `json:"escrow_held_at,omitempty"`
	CompletedAt      *time.Time         `json:"completed_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
