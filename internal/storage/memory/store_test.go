package memory

import (
	"context"
	"errors"
	"testing"

	accdomain "github.com/Anton1921980/order-management/internal/account/domain"
	"github.com/Anton1921980/order-management/internal/apperr"
	catdomain "github.com/Anton1921980/order-management/internal/catalog/domain"
	orderapp "github.com/Anton1921980/order-management/internal/order/app"
	orderdomain "github.com/Anton1921980/order-management/internal/order/domain"
	"github.com/shopspring/decimal"
)

func seed(t *testing.T, s *Store, balance int64, price int64, stock int) (string, string) {
	t.Helper()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, accdomain.User{Name: "John Doe", Email: "john@example.com", Balance: decimal.NewFromInt(balance)})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	p, err := s.CreateProduct(ctx, catdomain.Product{Name: "Laptop", Price: decimal.NewFromInt(price), Stock: stock})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return u.ID, p.ID
}

func TestInTxCommitsAllEffects(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID, productID := seed(t, s, 1000, 50, 10)

	err := s.InTx(ctx, func(tx orderapp.Tx) error {
		if err := tx.DebitBalance(ctx, userID, decimal.NewFromInt(100)); err != nil {
			return err
		}
		if err := tx.DecrementStock(ctx, productID, 2); err != nil {
			return err
		}
		_, err := tx.InsertOrder(ctx, orderdomain.Order{
			UserID: userID, ProductID: productID, Quantity: 2, TotalPrice: decimal.NewFromInt(100),
		})
		return err
	})
	if err != nil {
		t.Fatalf("tx failed: %v", err)
	}

	u, _ := s.GetUser(ctx, userID)
	if !u.Balance.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected balance 900, got %s", u.Balance)
	}
	p, _ := s.GetProduct(ctx, productID)
	if p.Stock != 8 {
		t.Fatalf("expected stock 8, got %d", p.Stock)
	}
	orders, _ := s.OrdersForUser(ctx, userID)
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID, productID := seed(t, s, 1000, 50, 10)

	boom := errors.New("boom")
	err := s.InTx(ctx, func(tx orderapp.Tx) error {
		if err := tx.DebitBalance(ctx, userID, decimal.NewFromInt(100)); err != nil {
			return err
		}
		if err := tx.DecrementStock(ctx, productID, 2); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	u, _ := s.GetUser(ctx, userID)
	if !u.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("balance mutated by aborted tx: %s", u.Balance)
	}
	p, _ := s.GetProduct(ctx, productID)
	if p.Stock != 10 {
		t.Fatalf("stock mutated by aborted tx: %d", p.Stock)
	}
	orders, _ := s.OrdersForUser(ctx, userID)
	if len(orders) != 0 {
		t.Fatalf("aborted tx left an order behind: %d", len(orders))
	}
}

func TestTxReadsSeeOwnStagedWrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, productID := seed(t, s, 1000, 50, 10)

	err := s.InTx(ctx, func(tx orderapp.Tx) error {
		if err := tx.DecrementStock(ctx, productID, 4); err != nil {
			return err
		}
		p, err := tx.ProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p.Stock != 6 {
			t.Fatalf("expected staged stock 6, got %d", p.Stock)
		}
		return errors.New("abort")
	})
	if err == nil {
		t.Fatal("expected abort")
	}

	p, _ := s.GetProduct(ctx, productID)
	if p.Stock != 10 {
		t.Fatalf("staged write leaked: %d", p.Stock)
	}
}

func TestOrdersForUserInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID, productID := seed(t, s, 1000, 10, 100)

	for i := 1; i <= 3; i++ {
		qty := i
		err := s.InTx(ctx, func(tx orderapp.Tx) error {
			_, err := tx.InsertOrder(ctx, orderdomain.Order{
				UserID: userID, ProductID: productID, Quantity: qty,
				TotalPrice: decimal.NewFromInt(int64(10 * qty)),
			})
			return err
		})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	orders, err := s.OrdersForUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for i, o := range orders {
		if o.Quantity != i+1 {
			t.Fatalf("orders out of insertion order: %+v", orders)
		}
	}

	again, _ := s.OrdersForUser(ctx, userID)
	for i := range again {
		if again[i].ID != orders[i].ID {
			t.Fatal("ordering not stable across calls")
		}
	}
}

func TestEnrichmentReflectsCurrentState(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID, productID := seed(t, s, 1000, 50, 10)

	err := s.InTx(ctx, func(tx orderapp.Tx) error {
		_, err := tx.InsertOrder(ctx, orderdomain.Order{
			UserID: userID, ProductID: productID, Quantity: 1, TotalPrice: decimal.NewFromInt(50),
		})
		return err
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	newPrice := decimal.NewFromInt(75)
	if _, err := s.UpdateProduct(ctx, productID, catdomain.ProductPatch{Price: &newPrice}); err != nil {
		t.Fatalf("update product: %v", err)
	}

	orders, _ := s.OrdersForUser(ctx, userID)
	if !orders[0].Product.Price.Equal(newPrice) {
		t.Fatalf("enrichment must reflect current price, got %s", orders[0].Product.Price)
	}
	if !orders[0].TotalPrice.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("captured total must not be recomputed, got %s", orders[0].TotalPrice)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, accdomain.User{Name: "A", Email: "a@b.com", Balance: decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.CreateUser(ctx, accdomain.User{Name: "B", Email: "a@b.com", Balance: decimal.NewFromInt(1)})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument on duplicate email, got %v", err)
	}
}
