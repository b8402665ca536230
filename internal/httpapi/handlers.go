// Package httpapi exposes the HTTP surface of the service. Monetary values
// are emitted as JSON numbers.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	accountapp "github.com/Anton1921980/order-management/internal/account/app"
	accdomain "github.com/Anton1921980/order-management/internal/account/domain"
	"github.com/Anton1921980/order-management/internal/apperr"
	catalogapp "github.com/Anton1921980/order-management/internal/catalog/app"
	catdomain "github.com/Anton1921980/order-management/internal/catalog/domain"
	orderapp "github.com/Anton1921980/order-management/internal/order/app"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Handlers struct {
	orders   *orderapp.Service
	users    *accountapp.Service
	products *catalogapp.Service
}

func NewHandlers(orders *orderapp.Service, users *accountapp.Service, products *catalogapp.Service) *Handlers {
	return &Handlers{
		orders:   orders,
		users:    users,
		products: products,
	}
}

// --- orders ---

type placeOrderRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  any    `json:"quantity"`
}

// parseQuantity accepts JSON numbers and numeric strings, the same inputs the
// API has always accepted. Fractional, non-numeric and non-positive values
// are rejected by the caller's check.
func parseQuantity(v any) (int, bool) {
	switch q := v.(type) {
	case json.Number:
		n, err := q.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (h *Handlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var req placeOrderRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, apperr.Invalid("Invalid request body"))
		return
	}

	if req.UserID == "" || req.ProductID == "" || req.Quantity == nil {
		writeError(w, apperr.Invalid("Missing required fields: userId, productId, and quantity are required"))
		return
	}

	qty, ok := parseQuantity(req.Quantity)
	if !ok || qty <= 0 {
		writeError(w, apperr.Invalid("Quantity must be a positive number"))
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), req.UserID, req.ProductID, qty)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, map[string]any{"order": order})
}

func (h *Handlers) listUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	orders, err := h.orders.OrdersForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, len(orders), map[string]any{"orders": orders})
}

// --- users ---

type createUserRequest struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Balance *decimal.Decimal `json:"balance"`
}

type patchUserRequest struct {
	Name    *string          `json:"name"`
	Email   *string          `json:"email"`
	Balance *decimal.Decimal `json:"balance"`
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(users), map[string]any{"users": users})
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Invalid("Invalid request body"))
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Name, req.Email, req.Balance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"user": user})
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	var req patchUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Invalid("Invalid request body"))
		return
	}

	user, err := h.users.UpdateUser(r.Context(), chi.URLParam(r, "id"), accdomain.UserPatch{
		Name:    req.Name,
		Email:   req.Email,
		Balance: req.Balance,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- products ---

type createProductRequest struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock"`
}

type patchProductRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock"`
}

func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(products), map[string]any{"products": products})
}

func (h *Handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handlers) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Invalid("Invalid request body"))
		return
	}

	if req.Price == nil {
		writeError(w, apperr.Invalid("Price is required"))
		return
	}
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	product, err := h.products.CreateProduct(r.Context(), req.Name, *req.Price, stock)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"product": product})
}

func (h *Handlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req patchProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Invalid("Invalid request body"))
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), chi.URLParam(r, "id"), catdomain.ProductPatch{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{"status": "ok"})
}
