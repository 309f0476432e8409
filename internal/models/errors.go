package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so callers can tell local rejections,
// connectivity problems and backend answers apart.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNetwork
	KindTimeout
	KindBackend
	KindResponseShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindBackend:
		return "backend"
	case KindResponseShape:
		return "response_shape"
	default:
		return "unknown"
	}
}

// Validation errors raised before any request is made.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceUnknown    = errors.New("balance is not loaded yet")
	ErrReceiverRequired  = errors.New("receiver account is required")
	ErrSelfTransfer      = errors.New("cannot transfer to the same account")
	ErrActionInFlight    = errors.New("another action is already in progress for this account")
	ErrInvalidEmail      = errors.New("email is invalid")
	ErrEmailRequired     = errors.New("email is required")
	ErrPasswordRequired  = errors.New("password is required")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrNameRequired      = errors.New("name is required")
	ErrAccountRequired   = errors.New("account number is required")
	ErrInvalidBalance    = errors.New("starting balance must be a non-negative number")
	ErrInvalidRole       = errors.New("role must be user or admin")
	ErrLoginInProgress   = errors.New("login already in progress")
	ErrLoginCanceled     = errors.New("login canceled by logout")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrForbidden         = errors.New("forbidden")
)

// Error is the error type returned by the gateway and the services.
type Error struct {
	Kind    ErrorKind
	Op      string // operation, e.g. "deposit"
	Field   string // form field for validation errors
	Status  int    // HTTP status for backend errors
	Message string // human readable
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidationError wraps a sentinel as a local validation failure.
func NewValidationError(op, field string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Message: err.Error(), Err: err}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ErrorResponse is the JSON body written for failed requests.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: insufficient funds
	Error string `json:"error"`

	// Error kind
	// example: validation
	Kind string `json:"kind"`

	// Form field the error refers to
	// example: amount
	Field string `json:"field,omitempty"`
}
