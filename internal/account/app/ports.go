package app

import (
	"context"

	"github.com/Anton1921980/order-management/internal/account/domain"
)

// UserRepo persists users. Get and Update return apperr.NotFound when the id
// is absent; Create and Update return apperr.ErrInvalidArgument on a
// duplicate email.
type UserRepo interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
