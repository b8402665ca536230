package app

import (
	"context"
	"errors"
	"testing"

	"github.com/Anton1921980/order-management/internal/account/domain"
	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/shopspring/decimal"
)

type fakeRepo struct {
	created domain.User
}

func (f *fakeRepo) ListUsers(ctx context.Context) ([]domain.User, error) { return nil, nil }
func (f *fakeRepo) GetUser(ctx context.Context, id string) (domain.User, error) {
	return domain.User{}, nil
}
func (f *fakeRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	f.created = u
	return u, nil
}
func (f *fakeRepo) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	return domain.User{}, nil
}
func (f *fakeRepo) DeleteUser(ctx context.Context, id string) error { return nil }

func TestCreateUserValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateUser(context.Background(), "   ", "a@b.com", nil)
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})

	t.Run("empty email -> invalid", func(t *testing.T) {
		_, err := svc.CreateUser(context.Background(), "John", "  ", nil)
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})

	t.Run("negative balance -> invalid", func(t *testing.T) {
		neg := decimal.NewFromInt(-1)
		_, err := svc.CreateUser(context.Background(), "John", "a@b.com", &neg)
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})

	t.Run("email normalized, balance defaulted", func(t *testing.T) {
		u, err := svc.CreateUser(context.Background(), "John Doe", "  John@Example.COM ", nil)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if u.Email != "john@example.com" {
			t.Fatalf("email not normalized: %q", u.Email)
		}
		if !u.Balance.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected default balance 100, got %s", u.Balance)
		}
	})
}

func TestUpdateUserValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	t.Run("malformed id -> invalid", func(t *testing.T) {
		_, err := svc.UpdateUser(context.Background(), "not-a-uuid", domain.UserPatch{})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})

	t.Run("negative balance -> invalid", func(t *testing.T) {
		neg := decimal.NewFromInt(-5)
		_, err := svc.UpdateUser(context.Background(), "6f1f39f4-6a53-4b38-87de-25a6218e2c12", domain.UserPatch{Balance: &neg})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})
}
