package domain

import (
	"errors"
	"fmt"
)

// ErrType classifies errors for the TUI to display appropriate messages.
type ErrType int

const (
	ErrUnknown    ErrType = iota
	ErrConfig             // client misconfigured (bad URL, kubeconfig)
	ErrTransport          // backend not reachable
	ErrServer             // non-2xx response
	ErrValidation         // rejected before any request was sent
)

func (t ErrType) String() string {
	switch t {
	case ErrConfig:
		return "config"
	case ErrTransport:
		return "transport"
	case ErrServer:
		return "server"
	case ErrValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// APIError wraps a backend or client-side failure with classification.
type APIError struct {
	Type    ErrType
	Status  int // HTTP status, ErrServer only
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Type == ErrServer && e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ErrorMessage returns the text shown to the operator for err. For an *APIError it
// is the bare message, so server bodies surface verbatim.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// IsType reports whether err is an *APIError of the given type.
func IsType(err error, t ErrType) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == t
}
