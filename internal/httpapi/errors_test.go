package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Anton1921980/order-management/internal/apperr"
)

func recordError(err error) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	writeError(rec, err)
	return rec
}

func TestWriteErrorStatusMapping(t *testing.T) {
	t.Run("invalid argument -> 400", func(t *testing.T) {
		rec := recordError(apperr.Invalid("Quantity must be a positive number"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("insufficient stock -> 400", func(t *testing.T) {
		rec := recordError(apperr.ErrInsufficientStock)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("insufficient balance -> 400", func(t *testing.T) {
		rec := recordError(apperr.ErrInsufficientBalance)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("not found -> 404", func(t *testing.T) {
		rec := recordError(apperr.NotFound("product"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("wrapped not found -> 404", func(t *testing.T) {
		rec := recordError(fmt.Errorf("load: %w", apperr.NotFound("user")))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("transient -> 503 with generic message", func(t *testing.T) {
		rec := recordError(fmt.Errorf("%w: commit conflict", apperr.ErrTransient))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("got %d", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["status"] != "error" {
			t.Fatalf("5xx must carry error status, got %v", body["status"])
		}
		if body["message"] == "commit conflict" {
			t.Fatal("internal detail must not leak to the caller")
		}
	})

	t.Run("unknown error -> 500 generic", func(t *testing.T) {
		rec := recordError(errors.New("boom"))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("got %d", rec.Code)
		}
		if decodeBody(t, rec)["message"] != "Internal server error" {
			t.Fatal("expected generic message")
		}
	})
}

func TestBusinessMessagesPassThrough(t *testing.T) {
	rec := recordError(apperr.ErrInsufficientStock)
	if decodeBody(t, rec)["message"] != "Not enough product in stock" {
		t.Fatalf("message must pass through verbatim, got %s", rec.Body.String())
	}
}
