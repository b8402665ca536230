package app

import (
	"context"
	"strings"

	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/Anton1921980/order-management/internal/catalog/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, apperr.Invalid("Invalid id format: %s", id)
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (domain.Product, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return domain.Product{}, apperr.Invalid("Name is required")
	}
	if price.IsNegative() {
		return domain.Product{}, apperr.Invalid("Price cannot be negative")
	}
	if stock < 0 {
		return domain.Product{}, apperr.Invalid("Stock cannot be negative")
	}

	return s.repo.CreateProduct(ctx, domain.Product{
		Name:  name,
		Price: price,
		Stock: stock,
	})
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, apperr.Invalid("Invalid id format: %s", id)
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return domain.Product{}, apperr.Invalid("Name is required")
		}
		patch.Name = &trimmed
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return domain.Product{}, apperr.Invalid("Price cannot be negative")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return domain.Product{}, apperr.Invalid("Stock cannot be negative")
	}

	return s.repo.UpdateProduct(ctx, id, patch)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Invalid("Invalid id format: %s", id)
	}
	return s.repo.DeleteProduct(ctx, id)
}
