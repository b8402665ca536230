package app

import (
	"context"

	"github.com/Anton1921980/order-management/internal/order/domain"
	"github.com/shopspring/decimal"
)

// UserSnapshot is the transactional read of a user inside the place-order
// unit: only the fields the engine checks and mutates.
type UserSnapshot struct {
	ID      string
	Balance decimal.Decimal
}

// ProductSnapshot is the transactional read of a product inside the
// place-order unit.
type ProductSnapshot struct {
	ID    string
	Price decimal.Decimal
	Stock int
}

// Tx is the set of reads and mutations available inside one atomic unit.
// Implementations return apperr.NotFound when the row is absent. Either every
// mutation performed through a Tx commits or none do.
type Tx interface {
	UserForUpdate(ctx context.Context, id string) (UserSnapshot, error)
	ProductForUpdate(ctx context.Context, id string) (ProductSnapshot, error)
	DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) error
	DecrementStock(ctx context.Context, productID string, quantity int) error
	InsertOrder(ctx context.Context, o domain.Order) (domain.Order, error)
}

// TxStore runs fn inside one atomic transaction. A non-nil error from fn
// aborts the unit with no observable partial effect. Storage-level commit
// conflicts that outlive the retry budget surface as apperr.ErrTransient.
type TxStore interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// OrderReader is the query-side port. Reads are non-blocking and take no
// locks; enrichment is a join against current user and product state.
type OrderReader interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	OrdersForUser(ctx context.Context, userID string) ([]domain.EnrichedOrder, error)
}
