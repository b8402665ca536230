package app

import (
	"context"
	"errors"
	"testing"

	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/Anton1921980/order-management/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

type fakeRepo struct{}

func (fakeRepo) ListProducts(ctx context.Context) ([]domain.Product, error) { return nil, nil }
func (fakeRepo) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, nil
}
func (fakeRepo) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return p, nil
}
func (fakeRepo) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	return domain.Product{}, nil
}
func (fakeRepo) DeleteProduct(ctx context.Context, id string) error { return nil }

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(fakeRepo{})

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "   ", decimal.NewFromInt(10), 5)
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", decimal.NewFromInt(-1), 5)
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", decimal.NewFromInt(10), -1)
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})

	t.Run("zero price and stock allowed", func(t *testing.T) {
		p, err := svc.CreateProduct(context.Background(), "Sticker", decimal.Zero, 0)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if p.Name != "Sticker" {
			t.Fatalf("unexpected product: %+v", p)
		}
	})
}

func TestGetProductRejectsMalformedID(t *testing.T) {
	svc := NewService(fakeRepo{})

	_, err := svc.GetProduct(context.Background(), "123")
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
