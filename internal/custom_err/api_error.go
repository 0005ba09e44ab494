package custom_err

import (
	"errors"
	"fmt"
)

// Kind is the coarse failure class every client error collapses into.
type Kind string

const (
	KindNone            Kind = ""
	KindNetwork         Kind = "network"
	KindUnauthenticated Kind = "unauthenticated"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindServer          Kind = "server"
)

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	default:
		return ErrServer
	}
}

// APIError is returned for every failed call to the wallet service.
type APIError struct {
	Op         string
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.sentinel().Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *APIError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.sentinel(), e.Err}
	}
	return []error{e.Kind.sentinel()}
}

// KindForStatus maps an HTTP status of the wallet service to a Kind.
func KindForStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindUnauthenticated
	case status == 404:
		return KindNotFound
	case status == 409:
		return KindConflict
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// KindOf classifies any error produced by this module.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrTokenExpired):
		return KindUnauthenticated
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrWalletNotLoaded):
		return KindNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrAmountTooSmall),
		errors.Is(err, ErrAmountTooLarge),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrSelfTransfer):
		return KindValidation
	case errors.Is(err, ErrSubmissionInFlight), errors.Is(err, ErrStaleResponse), errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindServer
	}
}
