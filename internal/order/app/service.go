package app

import (
	"context"
	"fmt"

	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/Anton1921980/order-management/internal/order/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	store  TxStore
	reader OrderReader
}

func NewService(store TxStore, reader OrderReader) *Service {
	return &Service{
		store:  store,
		reader: reader,
	}
}

// PlaceOrder debits the user's balance, decrements the product's stock and
// inserts the order as one atomic unit. Stock is checked before balance; when
// both would fail the caller sees the stock error. The operation is not
// idempotent: identical calls produce distinct orders and distinct deductions.
func (s *Service) PlaceOrder(ctx context.Context, userID, productID string, quantity int) (domain.Order, error) {
	if quantity <= 0 {
		return domain.Order{}, apperr.Invalid("Quantity must be a positive number")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return domain.Order{}, apperr.Invalid("Invalid userId format: %s", userID)
	}
	if _, err := uuid.Parse(productID); err != nil {
		return domain.Order{}, apperr.Invalid("Invalid productId format: %s", productID)
	}

	var created domain.Order

	err := s.store.InTx(ctx, func(tx Tx) error {
		user, err := tx.UserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		product, err := tx.ProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		totalPrice := product.Price.Mul(decimal.NewFromInt(int64(quantity)))

		if product.Stock < quantity {
			return apperr.ErrInsufficientStock
		}
		if user.Balance.LessThan(totalPrice) {
			return apperr.ErrInsufficientBalance
		}

		if err := tx.DebitBalance(ctx, user.ID, totalPrice); err != nil {
			return fmt.Errorf("debit balance: %w", err)
		}
		if err := tx.DecrementStock(ctx, product.ID, quantity); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}

		created, err = tx.InsertOrder(ctx, domain.Order{
			UserID:     userID,
			ProductID:  productID,
			Quantity:   quantity,
			TotalPrice: totalPrice,
		})
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return created, nil
}

// OrdersForUser returns every order the user has placed, enriched with the
// current user and product summaries. Orders come back in creation order and
// the sequence is stable for a given storage state. A user with no orders
// yields an empty slice, not an error.
func (s *Service) OrdersForUser(ctx context.Context, userID string) ([]domain.EnrichedOrder, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperr.Invalid("Invalid userId format: %s", userID)
	}

	exists, err := s.reader.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("user")
	}

	orders, err := s.reader.OrdersForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []domain.EnrichedOrder{}
	}
	return orders, nil
}
