// Command seed wipes the database and loads the sample users and products.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	accdomain "github.com/Anton1921980/order-management/internal/account/domain"
	accountpg "github.com/Anton1921980/order-management/internal/account/infra/postgres"
	catdomain "github.com/Anton1921980/order-management/internal/catalog/domain"
	catalogpg "github.com/Anton1921980/order-management/internal/catalog/infra/postgres"
	"github.com/Anton1921980/order-management/pkg/config"
	"github.com/Anton1921980/order-management/pkg/logger"
	"github.com/Anton1921980/order-management/pkg/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type sampleUser struct {
	name    string
	email   string
	balance int64
}

type sampleProduct struct {
	name  string
	price string
	stock int
}

var sampleUsers = []sampleUser{
	{"John Doe", "john@example.com", 1000},
	{"Jane Smith", "jane@example.com", 750},
	{"Bob Johnson", "bob@example.com", 500},
}

var sampleProducts = []sampleProduct{
	{"Laptop", "999.99", 10},
	{"Smartphone", "499.99", 20},
	{"Headphones", "99.99", 30},
	{"Monitor", "299.99", 15},
	{"Keyboard", "59.99", 25},
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "seed", Env: cfg.AppEnv, Level: cfg.LogLevel})

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Error("db migrate failed", slog.Any("err", err))
		os.Exit(1)
	}

	if err := run(ctx, pool, log); err != nil {
		log.Error("seed failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("database seeded")
}

func run(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	// Orders first so the foreign keys allow the wipe.
	for _, table := range []string{"orders", "users", "products"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Info("previous data cleared")

	users := accountpg.NewUserRepo(pool)
	for _, u := range sampleUsers {
		created, err := users.CreateUser(ctx, accdomain.User{
			Name:    u.name,
			Email:   u.email,
			Balance: decimal.NewFromInt(u.balance),
		})
		if err != nil {
			return fmt.Errorf("create user %s: %w", u.email, err)
		}
		log.Info("user created", slog.String("id", created.ID), slog.String("email", created.Email))
	}

	products := catalogpg.NewProductRepo(pool)
	for _, p := range sampleProducts {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return fmt.Errorf("parse price for %s: %w", p.name, err)
		}
		created, err := products.CreateProduct(ctx, catdomain.Product{
			Name:  p.name,
			Price: price,
			Stock: p.stock,
		})
		if err != nil {
			return fmt.Errorf("create product %s: %w", p.name, err)
		}
		log.Info("product created", slog.String("id", created.ID), slog.String("name", created.Name))
	}

	return nil
}
