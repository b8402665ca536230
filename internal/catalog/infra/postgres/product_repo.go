package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/Anton1921980/order-management/internal/catalog/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func (r *ProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price::text, stock, created_at, updated_at
		 FROM products ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, price::text, stock, created_at, updated_at
		 FROM products WHERE id = $1`, id,
	)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product")
	}
	return p, err
}

func (r *ProductRepo) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, price, stock)
		 VALUES ($1, $2::numeric, $3)
		 RETURNING id, name, price::text, stock, created_at, updated_at`,
		p.Name, p.Price.String(), p.Stock,
	)
	return scanProduct(row)
}

func (r *ProductRepo) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	var price *string
	if patch.Price != nil {
		s := patch.Price.String()
		price = &s
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE products
		 SET name = COALESCE($2, name),
		     price = COALESCE($3::numeric, price),
		     stock = COALESCE($4, stock),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, price::text, stock, created_at, updated_at`,
		id, patch.Name, price, patch.Stock,
	)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product")
	}
	return p, err
}

func (r *ProductRepo) DeleteProduct(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Product{}, err
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return domain.Product{}, fmt.Errorf("parse price: %w", err)
	}
	return p, nil
}
