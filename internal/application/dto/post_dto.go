package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePostRequest publica un listing (solo sellers verificados).
type CreatePostRequest struct {
	Title       string          `json:"title" validate:"required,min=3,max=150"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Category    string          `json:"category" validate:"omitempty,max=50"`
	City        string          `json:"city" validate:"omitempty,max=100"`
	IsPreOrder  bool            `json:"is_pre_order"`
}

// PostResponse representación pública de un listing.
type PostResponse struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"seller_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	City        string          `json:"city,omitempty"`
	IsPreOrder  bool            `json:"is_pre_order"`
	CreatedAt   time.Time       `json:"created_at"`
}
