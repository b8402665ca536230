package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anton1921980/order-management/internal/account/domain"
	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, balance::text, created_at, updated_at
		 FROM users ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) GetUser(ctx context.Context, id string) (domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, email, balance::text, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, apperr.NotFound("user")
	}
	return u, err
}

func (r *UserRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, balance)
		 VALUES ($1, $2, $3::numeric)
		 RETURNING id, name, email, balance::text, created_at, updated_at`,
		u.Name, u.Email, u.Balance.String(),
	)
	created, err := scanUser(row)
	if isUniqueViolation(err) {
		return domain.User{}, apperr.Invalid("Duplicate field value: email. Please use another value!")
	}
	return created, err
}

func (r *UserRepo) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	var balance *string
	if patch.Balance != nil {
		s := patch.Balance.String()
		balance = &s
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET name = COALESCE($2, name),
		     email = COALESCE($3, email),
		     balance = COALESCE($4::numeric, balance),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, email, balance::text, created_at, updated_at`,
		id, patch.Name, patch.Email, balance,
	)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, apperr.NotFound("user")
	}
	if isUniqueViolation(err) {
		return domain.User{}, apperr.Invalid("Duplicate field value: email. Please use another value!")
	}
	return u, err
}

func (r *UserRepo) DeleteUser(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u       domain.User
		balance string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &balance, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, err
	}
	var err error
	if u.Balance, err = decimal.NewFromString(balance); err != nil {
		return domain.User{}, fmt.Errorf("parse balance: %w", err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
