package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceNumberPrefix prefijo del consecutivo PL-YYYY-SEQ (ej. PL-2026-000123).
const InvoiceNumberPrefix = "PL"

// Invoice es el comprobante emitido al completar una transacción.
// El consecutivo sale de un contador atómico en la base de datos.
type Invoice struct {
	InvoiceNumber string
	TransactionID string
	PostID        string
	IssuedAt      time.Time
	SellerName    string
	SellerPhone   string
	SellerCity    string
	BuyerName     string
	BuyerPhone    string
	BuyerCity     string
	ItemTitle     string
	ItemPrice     decimal.Decimal // XAF
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
	IsPreOrder    bool
}
