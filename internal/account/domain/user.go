package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User holds a spending balance debited only by successful orders or by
// administrative update. Balance never goes below zero.
type User struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UserPatch carries a partial administrative update. Nil fields are left
// untouched.
type UserPatch struct {
	Name    *string
	Email   *string
	Balance *decimal.Decimal
}
