package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Post es un listing publicado por un seller. Entrada de solo lectura para el
// núcleo de transacciones; una Transaction lo referencia por PostID.
type Post struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	Price       decimal.Decimal // XAF
	Category    string
	City        string
	IsPreOrder  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
