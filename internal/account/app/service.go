package app

import (
	"context"
	"strings"

	"github.com/Anton1921980/order-management/internal/account/domain"
	"github.com/Anton1921980/order-management/internal/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance granted to new users unless one is supplied.
var defaultBalance = decimal.NewFromInt(100)

type Service struct {
	repo UserRepo
}

func NewService(repo UserRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, apperr.Invalid("Invalid id format: %s", id)
	}
	return s.repo.GetUser(ctx, id)
}

func (s *Service) CreateUser(ctx context.Context, name, email string, balance *decimal.Decimal) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return domain.User{}, apperr.Invalid("Name is required")
	}
	if email == "" {
		return domain.User{}, apperr.Invalid("Email is required")
	}

	b := defaultBalance
	if balance != nil {
		if balance.IsNegative() {
			return domain.User{}, apperr.Invalid("Balance cannot be negative")
		}
		b = *balance
	}

	return s.repo.CreateUser(ctx, domain.User{
		Name:    name,
		Email:   email,
		Balance: b,
	})
}

func (s *Service) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, apperr.Invalid("Invalid id format: %s", id)
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return domain.User{}, apperr.Invalid("Name is required")
		}
		patch.Name = &trimmed
	}
	if patch.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*patch.Email))
		if normalized == "" {
			return domain.User{}, apperr.Invalid("Email is required")
		}
		patch.Email = &normalized
	}
	if patch.Balance != nil && patch.Balance.IsNegative() {
		return domain.User{}, apperr.Invalid("Balance cannot be negative")
	}

	return s.repo.UpdateUser(ctx, id, patch)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Invalid("Invalid id format: %s", id)
	}
	return s.repo.DeleteUser(ctx, id)
}
