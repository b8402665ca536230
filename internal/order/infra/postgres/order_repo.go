package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/Anton1921980/order-management/internal/order/app"
	"github.com/Anton1921980/order-management/internal/order/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SQLSTATEs treated as commit conflicts worth retrying.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

type OrderRepo struct {
	pool        *pgxpool.Pool
	maxAttempts int
	retryBase   time.Duration
}

func NewOrderRepo(pool *pgxpool.Pool, maxAttempts int, retryBase time.Duration) *OrderRepo {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if retryBase <= 0 {
		retryBase = 25 * time.Millisecond
	}
	return &OrderRepo{
		pool:        pool,
		maxAttempts: maxAttempts,
		retryBase:   retryBase,
	}
}

// InTx runs fn inside a SERIALIZABLE transaction. Commit conflicts are
// retried with exponential backoff until the attempt budget runs out, then
// surface as apperr.ErrTransient. Business-rule errors returned by fn abort
// the transaction and pass through untouched.
func (r *OrderRepo) InTx(ctx context.Context, fn func(tx app.Tx) error) error {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := r.retryBase << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %v", apperr.ErrTransient, lastErr)
}

func (r *OrderRepo) runOnce(ctx context.Context, fn func(tx app.Tx) error) error {
	pgtx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", apperr.ErrTransient, err)
	}
	defer pgtx.Rollback(ctx)

	if err := fn(&orderTx{tx: pgtx}); err != nil {
		return err
	}

	if err := pgtx.Commit(ctx); err != nil {
		if retryable(err) {
			return err
		}
		return fmt.Errorf("%w: commit: %v", apperr.ErrTransient, err)
	}
	return nil
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == serializationFailure || pgErr.Code == deadlockDetected
}

type orderTx struct {
	tx pgx.Tx
}

func (t *orderTx) UserForUpdate(ctx context.Context, id string) (app.UserSnapshot, error) {
	var (
		snap    app.UserSnapshot
		balance string
	)
	err := t.tx.QueryRow(ctx,
		`SELECT id, balance::text FROM users WHERE id = $1 FOR UPDATE`, id,
	).Scan(&snap.ID, &balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return app.UserSnapshot{}, apperr.NotFound("user")
	}
	if err != nil {
		return app.UserSnapshot{}, fmt.Errorf("select user: %w", err)
	}

	snap.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return app.UserSnapshot{}, fmt.Errorf("parse balance: %w", err)
	}
	return snap, nil
}

func (t *orderTx) ProductForUpdate(ctx context.Context, id string) (app.ProductSnapshot, error) {
	var (
		snap  app.ProductSnapshot
		price string
	)
	err := t.tx.QueryRow(ctx,
		`SELECT id, price::text, stock FROM products WHERE id = $1 FOR UPDATE`, id,
	).Scan(&snap.ID, &price, &snap.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return app.ProductSnapshot{}, apperr.NotFound("product")
	}
	if err != nil {
		return app.ProductSnapshot{}, fmt.Errorf("select product: %w", err)
	}

	snap.Price, err = decimal.NewFromString(price)
	if err != nil {
		return app.ProductSnapshot{}, fmt.Errorf("parse price: %w", err)
	}
	return snap, nil
}

func (t *orderTx) DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE users SET balance = balance - $2::numeric, updated_at = NOW() WHERE id = $1`,
		userID, amount.String(),
	)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (t *orderTx) DecrementStock(ctx context.Context, productID string, quantity int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

func (t *orderTx) InsertOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	err := t.tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, product_id, quantity, total_price)
		 VALUES ($1, $2, $3, $4::numeric)
		 RETURNING id, created_at`,
		o.UserID, o.ProductID, o.Quantity, o.TotalPrice.String(),
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

// --- app.OrderReader ---

func (r *OrderRepo) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

// OrdersForUser joins orders with the current user and product rows. Left
// joins keep orders visible when the product was deleted afterward. Creation
// order, ties broken by id, so the sequence is stable for a given state.
func (r *OrderRepo) OrdersForUser(ctx context.Context, userID string) ([]domain.EnrichedOrder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT o.id, o.user_id, o.product_id, o.quantity, o.total_price::text, o.created_at,
		        COALESCE(u.name, ''), COALESCE(u.email, ''),
		        COALESCE(p.name, ''), COALESCE(p.price::text, '0')
		 FROM orders o
		 LEFT JOIN users u ON u.id = o.user_id
		 LEFT JOIN products p ON p.id = o.product_id
		 WHERE o.user_id = $1
		 ORDER BY o.created_at, o.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []domain.EnrichedOrder
	for rows.Next() {
		var (
			e            domain.EnrichedOrder
			total, price string
		)
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ProductID, &e.Quantity, &total, &e.CreatedAt,
			&e.User.Name, &e.User.Email,
			&e.Product.Name, &price,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if e.TotalPrice, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total: %w", err)
		}
		if e.Product.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}
