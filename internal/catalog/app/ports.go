package app

import (
	"context"

	"github.com/Anton1921980/order-management/internal/catalog/domain"
)

// ProductRepo persists products. Get, Update and Delete return apperr.NotFound
// when the id is absent.
type ProductRepo interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
