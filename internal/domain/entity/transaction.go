package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status es el estado de una transacción de escrow. El avance es lineal y
// hacia adelante; refunded y cancelled son salidas terminales laterales.
type Status string

const (
	StatusPendingSetup        Status = "pending_setup"
	StatusAwaitingPayment     Status = "awaiting_payment"
	StatusEscrowHeld          Status = "escrow_held"
	StatusInTransitToHub      Status = "in_transit_to_hub"
	StatusAtProlistHub        Status = "at_prolist_hub"
	StatusOutForDelivery      Status = "out_for_delivery"
	StatusDeliveredAwaiting   Status = "delivered_awaiting_confirmation"
	StatusCompleted           Status = "completed"
	StatusRefunded            Status = "refunded"
	StatusCancelled           Status = "cancelled"
)

// StatusOrder es la progresión canónica (no se pueden saltar pasos).
// refunded y cancelled no forman parte del orden: son terminales laterales.
var StatusOrder = []Status{
	StatusPendingSetup,
	StatusAwaitingPayment,
	StatusEscrowHeld,
	StatusInTransitToHub,
	StatusAtProlistHub,
	StatusOutForDelivery,
	StatusDeliveredAwaiting,
	StatusCompleted,
}

// Index devuelve la posición del estado en el orden canónico, o -1 si el
// estado no pertenece a la progresión (refunded, cancelled, desconocido).
func (s Status) Index() int {
	for i, st := range StatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// IsTerminal indica si el estado no admite más transiciones.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRefunded || s == StatusCancelled
}

// IsValid indica si el valor corresponde a un estado conocido.
func (s Status) IsValid() bool {
	return s.Index() >= 0 || s == StatusRefunded || s == StatusCancelled
}

// Label devuelve la etiqueta de presentación del estado.
func (s Status) Label() string {
	switch s {
	case StatusPendingSetup:
		return "Setting Up"
	case StatusAwaitingPayment:
		return "Awaiting Payment"
	case StatusEscrowHeld:
		return "Payment Secured"
	case StatusInTransitToHub:
		return "Shipped to Hub"
	case StatusAtProlistHub:
		return "Received at Hub"
	case StatusOutForDelivery:
		return "Out for Delivery"
	case StatusDeliveredAwaiting:
		return "Delivered - Awaiting Confirmation"
	case StatusCompleted:
		return "Completed"
	case StatusRefunded:
		return "Refunded"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Logistics datos de entrega del seller al hub (se adjuntan al despachar).
type Logistics struct {
	DropoffCompany string
	DropoffCity    string
	DropoffNote    string
}

// Transaction es la entidad central: una venta con pago en custodia.
// Nunca se borra; completed/refunded/cancelled la dejan como registro histórico.
type Transaction struct {
	ID          string
	PostID      string
	ProductName string
	Description string

	Price       decimal.Decimal // precio del item en XAF
	DeliveryFee decimal.Decimal

	SellerID    string
	SellerName  string
	SellerPhone string

	// BuyerID queda vacío hasta que un comprador reclama la transacción.
	// BuyerPhone permite compradores invitados sin cuenta.
	BuyerID    string
	BuyerName  string
	BuyerPhone string
	BuyerEmail string
	BuyerCity  string

	DeliveryLocation string
	DeliveryArea     string
	Logistics        *Logistics

	// AssignedAgentID se setea una sola vez, al pasar a out_for_delivery.
	AssignedAgentID   string
	AssignedAgentName string

	Status Status

	IsPreOrder      bool
	ExpectedArrival string
	PreOrderNote    string

	PaymentLink string

	// ConfirmationCode lo presenta el buyer en la confirmación final.
	// DeliveryOTP prueba la entrega física agente→buyer.
	ConfirmationCode string
	DeliveryOTP      string

	InvoiceNumber string

	EscrowHeldAt *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Total devuelve precio + tarifa de entrega.
func (t *Transaction) Total() decimal.Decimal {
	return t.Price.Add(t.DeliveryFee)
}
