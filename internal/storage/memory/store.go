// Package memory is the test-mode storage backend. It implements the same
// ports as the Postgres repositories; transactions are serialized by the
// store mutex and mutations are staged so an aborted unit leaves no trace.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	accdomain "github.com/Anton1921980/order-management/internal/account/domain"
	"github.com/Anton1921980/order-management/internal/apperr"
	catdomain "github.com/Anton1921980/order-management/internal/catalog/domain"
	orderapp "github.com/Anton1921980/order-management/internal/order/app"
	orderdomain "github.com/Anton1921980/order-management/internal/order/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]accdomain.User
	products map[string]catdomain.Product
	orders   []orderdomain.Order
}

func New() *Store {
	return &Store{
		users:    make(map[string]accdomain.User),
		products: make(map[string]catdomain.Product),
	}
}

// --- account.UserRepo ---

func (s *Store) ListUsers(ctx context.Context) ([]accdomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]accdomain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (accdomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return accdomain.User{}, apperr.NotFound("user")
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u accdomain.User) (accdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return accdomain.User{}, apperr.Invalid("Duplicate field value: email. Please use another value!")
		}
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch accdomain.UserPatch) (accdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return accdomain.User{}, apperr.NotFound("user")
	}

	if patch.Email != nil {
		for _, existing := range s.users {
			if existing.ID != id && existing.Email == *patch.Email {
				return accdomain.User{}, apperr.Invalid("Duplicate field value: email. Please use another value!")
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Balance != nil {
		u.Balance = *patch.Balance
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return apperr.NotFound("user")
	}
	delete(s.users, id)
	return nil
}

// --- catalog.ProductRepo ---

func (s *Store) ListProducts(ctx context.Context) ([]catdomain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]catdomain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (catdomain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return catdomain.Product{}, apperr.NotFound("product")
	}
	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p catdomain.Product) (catdomain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch catdomain.ProductPatch) (catdomain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return catdomain.Product{}, apperr.NotFound("product")
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return apperr.NotFound("product")
	}
	delete(s.products, id)
	return nil
}

// --- order.TxStore ---

// tx stages every mutation; nothing touches the base maps until commit.
type tx struct {
	s        *Store
	users    map[string]accdomain.User
	products map[string]catdomain.Product
	orders   []orderdomain.Order
}

// InTx holds the store write lock for the whole unit, so concurrent
// transactions are serialized and each one observes committed state only.
func (s *Store) InTx(ctx context.Context, fn func(t orderapp.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{
		s:        s,
		users:    make(map[string]accdomain.User),
		products: make(map[string]catdomain.Product),
	}

	if err := fn(t); err != nil {
		return err
	}

	for id, u := range t.users {
		s.users[id] = u
	}
	for id, p := range t.products {
		s.products[id] = p
	}
	s.orders = append(s.orders, t.orders...)
	return nil
}

func (t *tx) userRow(id string) (accdomain.User, bool) {
	if u, ok := t.users[id]; ok {
		return u, true
	}
	u, ok := t.s.users[id]
	return u, ok
}

func (t *tx) productRow(id string) (catdomain.Product, bool) {
	if p, ok := t.products[id]; ok {
		return p, true
	}
	p, ok := t.s.products[id]
	return p, ok
}

func (t *tx) UserForUpdate(ctx context.Context, id string) (orderapp.UserSnapshot, error) {
	u, ok := t.userRow(id)
	if !ok {
		return orderapp.UserSnapshot{}, apperr.NotFound("user")
	}
	return orderapp.UserSnapshot{ID: u.ID, Balance: u.Balance}, nil
}

func (t *tx) ProductForUpdate(ctx context.Context, id string) (orderapp.ProductSnapshot, error) {
	p, ok := t.productRow(id)
	if !ok {
		return orderapp.ProductSnapshot{}, apperr.NotFound("product")
	}
	return orderapp.ProductSnapshot{ID: p.ID, Price: p.Price, Stock: p.Stock}, nil
}

func (t *tx) DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	u, ok := t.userRow(userID)
	if !ok {
		return apperr.NotFound("user")
	}
	next := u.Balance.Sub(amount)
	if next.IsNegative() {
		return apperr.ErrInsufficientBalance
	}
	u.Balance = next
	u.UpdatedAt = time.Now().UTC()
	t.users[userID] = u
	return nil
}

func (t *tx) DecrementStock(ctx context.Context, productID string, quantity int) error {
	p, ok := t.productRow(productID)
	if !ok {
		return apperr.NotFound("product")
	}
	if p.Stock < quantity {
		return apperr.ErrInsufficientStock
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now().UTC()
	t.products[productID] = p
	return nil
}

func (t *tx) InsertOrder(ctx context.Context, o orderdomain.Order) (orderdomain.Order, error) {
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	t.orders = append(t.orders, o)
	return o, nil
}

// --- order.OrderReader ---

func (s *Store) UserExists(ctx context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[userID]
	return ok, nil
}

// OrdersForUser joins each order with the current user and product rows.
// Orders come back in insertion order. A product deleted after the order was
// placed yields an empty product summary, mirroring the left join in the
// Postgres reader.
func (s *Store) OrdersForUser(ctx context.Context, userID string) ([]orderdomain.EnrichedOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []orderdomain.EnrichedOrder
	for _, o := range s.orders {
		if o.UserID != userID {
			continue
		}
		e := orderdomain.EnrichedOrder{Order: o}
		if u, ok := s.users[o.UserID]; ok {
			e.User = orderdomain.UserSummary{Name: u.Name, Email: u.Email}
		}
		if p, ok := s.products[o.ProductID]; ok {
			e.Product = orderdomain.ProductSummary{Name: p.Name, Price: p.Price}
		}
		out = append(out, e)
	}
	return out, nil
}
