package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/Anton1921980/order-management/internal/order/app"
	"github.com/Anton1921980/order-management/internal/order/domain"
	"github.com/google/uuid"
)

// conflictedStore simulates a storage layer whose commit retry budget is
// exhausted.
type conflictedStore struct{}

func (conflictedStore) InTx(ctx context.Context, fn func(tx app.Tx) error) error {
	return fmt.Errorf("%w: serialization failure after 3 attempts", apperr.ErrTransient)
}

type emptyReader struct{}

func (emptyReader) UserExists(ctx context.Context, userID string) (bool, error) { return false, nil }
func (emptyReader) OrdersForUser(ctx context.Context, userID string) ([]domain.EnrichedOrder, error) {
	return nil, nil
}

func TestPlaceOrderSurfacesTransientFailure(t *testing.T) {
	svc := app.NewService(conflictedStore{}, emptyReader{})

	_, err := svc.PlaceOrder(context.Background(), uuid.NewString(), uuid.NewString(), 1)

	if !errors.Is(err, apperr.ErrTransient) {
		t.Fatalf("expected transient failure, got %v", err)
	}
	if errors.Is(err, apperr.ErrInvalidArgument) || apperr.IsNotFound(err) {
		t.Fatal("transient failure must stay distinct from business-rule failures")
	}
}
