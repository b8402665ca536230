package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product carries a stock count decremented only by successful orders or by
// administrative update. Stock never goes below zero.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductPatch carries a partial administrative update. Nil fields are left
// untouched.
type ProductPatch struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}
