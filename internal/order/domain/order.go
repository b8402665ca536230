package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable record of one committed purchase. TotalPrice is
// captured at order time and never recomputed.
type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	ProductID  string          `json:"productId"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// UserSummary carries the user fields attached to an order on read.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductSummary carries the product fields attached to an order on read.
type ProductSummary struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// EnrichedOrder joins an order with the current user and product summaries.
// The summaries reflect current state; TotalPrice stays as captured.
type EnrichedOrder struct {
	Order
	User    UserSummary    `json:"user"`
	Product ProductSummary `json:"product"`
}
