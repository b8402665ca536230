// Package apperr defines the error taxonomy shared by the services and the
// HTTP layer. Business-rule failures are terminal for a call; ErrTransient is
// the only error a caller may retry. Message text is surfaced verbatim to the
// caller for business-rule failures, so these strings are part of the API.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInsufficientStock   = errors.New("Not enough product in stock")
	ErrInsufficientBalance = errors.New("Insufficient balance")
	ErrTransient           = errors.New("storage conflict, please retry")
)

// NotFoundError reports a missing referenced entity ("user", "product").
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	switch e.Entity {
	case "user":
		return "User not found"
	case "product":
		return "Product not found"
	default:
		return e.Entity + " not found"
	}
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

type invalidArgumentError struct {
	msg string
}

func (e *invalidArgumentError) Error() string { return e.msg }

func (e *invalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// Invalid builds an ErrInvalidArgument whose message is exactly the formatted
// text, with no wrapping prefix.
func Invalid(format string, args ...any) error {
	return &invalidArgumentError{msg: fmt.Sprintf(format, args...)}
}
